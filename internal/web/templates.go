package web

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/google/uuid"

	"github.com/jaminalder/nxn-tic-tac-toe/internal/app"
	"github.com/jaminalder/nxn-tic-tac-toe/internal/theme"
)

type templates struct {
	base  *template.Template
	game  *template.Template
	board *template.Template
	index *template.Template
}

func loadTemplates() *templates {
	funcs := template.FuncMap{
		"bg": func() template.CSS { return template.CSS(theme.Hex(theme.Background)) },
	}
	base := template.Must(template.New("base").Funcs(funcs).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>
body { background: {{bg}}; color: #eee8d5; font-family: sans-serif; }
.row { display: flex; }
.row form { margin: 2px; }
.cell { width: 4em; height: 4em; font-size: 1.5em; border: 2px solid; }
.alert, .banner { margin: 0.5em 0; }
</style>
</head><body>{{template "content" .}}</body></html>`))
	// Define the board template within the same set so game can include it
	template.Must(base.New("board").Parse(boardTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Tic-Tac-Toe</h1>
<form action="/game" method="post">
  <label>Board size <input type="number" name="size" min="2" value="{{.DefaultSize}}"></label>
  <button>Create</button>
</form>`))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div id="board-container" hx-sse="swap:board">{{template "board" .Board}}</div>
</div>`))
	// Standalone board template used for fragment rendering
	board := template.Must(template.New("board_only").Parse(boardTemplate))
	return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

const boardTemplate = `
<div id="board">
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  {{if .Banner}}<div class="banner">{{.Banner}}</div>{{else}}<div class="turn">{{.Turn}}</div>{{end}}
  {{range .Rows}}
  <div class="row">
    {{range .}}
      <form hx-post="/game/{{$.ID}}/play" hx-target="#board" hx-swap="outerHTML" method="post">
        <input type="hidden" name="r" value="{{.Row}}">
        <input type="hidden" name="c" value="{{.Col}}">
        <button class="cell" type="submit" style="background: {{.Fill}}; color: {{.Accent}}">{{.Symbol}}</button>
      </form>
    {{end}}
  </div>
  {{end}}
</div>
`

type cellView struct {
	Row, Col int
	Symbol   string
	Fill     template.CSS
	Accent   template.CSS
}

type boardView struct {
	ID     string
	Rows   [][]cellView
	Banner string
	Turn   string
	Error  string
}

// newBoardView derives everything the board template shows from a snapshot.
func newBoardView(gs app.GameState, errMsg string) boardView {
	v := boardView{
		ID:     gs.ID,
		Rows:   make([][]cellView, gs.Size),
		Banner: theme.WinnerBanner(gs.Winner, gs.HasWinner),
		Turn:   theme.TurnLabel(gs.Turn),
		Error:  errMsg,
	}
	for r := 0; r < gs.Size; r++ {
		v.Rows[r] = make([]cellView, gs.Size)
		for c := 0; c < gs.Size; c++ {
			st := theme.StyleFor(gs.At(r, c))
			v.Rows[r][c] = cellView{
				Row:    r,
				Col:    c,
				Symbol: st.Symbol,
				Fill:   template.CSS(theme.Hex(st.Fill)),
				Accent: template.CSS(theme.Hex(st.Accent)),
			}
		}
	}
	return v
}

const playerCookie = "player_id"

// Helper to set cookie
func ensurePlayerCookie(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookie); err == nil && c.Value != "" {
		return c.Value
	}
	// Generate UUIDv4 for player ID
	v := uuid.NewString()
	http.SetCookie(w, &http.Cookie{Name: playerCookie, Value: v, Path: "/"})
	return v
}
