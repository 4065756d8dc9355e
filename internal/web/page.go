// Package web renders the landing page served at the site root.
package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"
)

const appTitle = "Sales Advisor"

// action is one advice button on the landing page.
type action struct {
	Label string
	Path  string
}

var actions = []action{
	{Label: "Sales recommendations", Path: "/api/sales-recommendations"},
	{Label: "Sales strategies", Path: "/api/sales-strategies"},
	{Label: "Marketing funnels", Path: "/api/marketing-funnels"},
}

// RegisterRoutes registers the landing page with Echo.
// The API routes should be registered before calling this function.
func RegisterRoutes(e *echo.Echo, version string) {
	e.GET("/", func(c echo.Context) error {
		return render(c, http.StatusOK, landingPage(version))
	})
}

func render(c echo.Context, status int, node gomponents.Node) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return node.Render(c.Response())
}

func landingPage(version string) gomponents.Node {
	buttons := make([]gomponents.Node, 0, len(actions))
	for _, a := range actions {
		buttons = append(buttons, html.Button(
			html.Type("button"),
			html.Disabled(),
			html.Class("advice"),
			html.Data("endpoint", a.Path),
			gomponents.Text(a.Label),
		))
	}

	return html.Doctype(html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text(appTitle)),
			html.StyleEl(gomponents.Raw(pageCSS)),
		),
		html.Body(
			html.Main(
				html.H1(gomponents.Text(appTitle)),
				html.P(gomponents.Text("Upload a CSV export of your sales data to get a statistical summary and generated advice.")),
				html.Form(
					html.ID("upload"),
					html.Input(html.Type("file"), html.Name("file"), html.Accept(".csv")),
					html.Button(html.Type("submit"), gomponents.Text("Analyze")),
				),
				html.Div(append([]gomponents.Node{html.ID("actions")}, buttons...)...),
				html.Pre(html.ID("output")),
				html.Footer(gomponents.Text("version "+version)),
			),
			html.Script(gomponents.Raw(pageJS)),
		),
	))
}

const pageCSS = `body{font-family:system-ui,sans-serif;margin:2rem auto;max-width:48rem;padding:0 1rem}
button{margin:.25rem .5rem .25rem 0}
pre{background:#f4f4f4;padding:1rem;white-space:pre-wrap}
footer{color:#777;font-size:.8rem}`

const pageJS = `(function(){
  var analysis = null;
  var out = document.getElementById("output");
  function show(res){ out.textContent = res.success ? (res.data || JSON.stringify(res.analysis, null, 2)) : res.error; }
  document.getElementById("upload").addEventListener("submit", function(ev){
    ev.preventDefault();
    out.textContent = "Analyzing...";
    fetch("/api/upload-csv", {method: "POST", body: new FormData(ev.target)})
      .then(function(r){ return r.json(); })
      .then(function(res){
        analysis = res.success ? res.analysis : null;
        document.querySelectorAll("button.advice").forEach(function(b){ b.disabled = !analysis; });
        show(res);
      });
  });
  document.querySelectorAll("button.advice").forEach(function(b){
    b.addEventListener("click", function(){
      out.textContent = "Generating...";
      fetch(b.dataset.endpoint, {
        method: "POST",
        headers: {"Content-Type": "application/json"},
        body: JSON.stringify({analysis: analysis})
      }).then(function(r){ return r.json(); }).then(show);
    });
  });
})();`
