package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

var dashboardPage = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>Monieshop Analytics</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@latest/bundles/datastar.js"></script>
<style>
body { font-family: system-ui, sans-serif; margin: 0; background: #f7f7f8; color: #1a1a1a; }
main { max-width: 64rem; margin: 0 auto; padding: 3rem 1.5rem; }
h1 { text-align: center; }
.subtitle { text-align: center; color: #555; }
.upload-zone { border: 2px dashed #cbd5e1; border-radius: 0.75rem; padding: 3rem; text-align: center; background: #fff; }
.metrics-card { background: #fff; border-radius: 0.75rem; padding: 1.5rem; margin: 1rem 0; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
.staff-table { width: 100%; border-collapse: collapse; }
.staff-table th, .staff-table td { text-align: left; padding: 0.25rem 0.5rem; border-bottom: 1px solid #eee; }
.empty { text-align: center; color: #777; }
button { padding: 0.5rem 1rem; border-radius: 0.5rem; border: 1px solid #cbd5e1; background: #fff; cursor: pointer; }
</style>
</head>
<body>
<main data-signals="{batchesData: [], insightsData: null}">
<h1>Monieshop Analytics</h1>
<p class="subtitle">Upload your daily transaction files to view key performance metrics</p>

<section class="upload-zone">
<form id="upload-form" enctype="multipart/form-data">
<input type="file" name="files" accept=".txt" multiple/>
<button type="button" data-on-click="@post('/api/upload', {contentType: 'form'})">Upload</button>
</form>
</section>

<section>
<button data-on-click="@get('/sse/metrics')">Refresh metrics</button>
<button data-on-click="@get('/sse/insights')">Load remote insights</button>
</section>

<div id="metrics-content" data-on-load="@get('/sse/metrics')">
<p class="empty">No batches yet. Upload transaction files to see metrics.</p>
</div>

<div id="insights-content"></div>
</main>
</body>
</html>
`))

// Dashboard returns the analytics dashboard page. The component is built on
// templ's public API around a plain html/template; there is no generated
// code behind it.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return dashboardPage.Execute(w, nil)
	})
}
