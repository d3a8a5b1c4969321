package site

// pageTemplate is the html/template for one artifact page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="{{.Theme}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Artifact.Title}} | {{.SiteTitle}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body>
  <header class="top-bar">
    <a class="home-link" href="{{.BasePath}}index.html">{{.SiteTitle}}</a>
    <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">
      <span class="sun-icon">&#9728;</span><span class="moon-icon">&#9790;</span>
    </button>
  </header>
  <main class="content">
    <section class="artifact-summary">
      <h1>{{.Artifact.Title}}</h1>
      <p class="overview">{{.Artifact.Overview}}</p>
      {{if .Artifact.Bullets}}<ul class="bullets">
        {{range .Artifact.Bullets}}<li>{{.}}</li>
        {{end}}
      </ul>{{end}}
    </section>
    <article class="readme">
      {{.Content}}
    </article>
  </main>
  <script src="{{.BasePath}}script.js"></script>
</body>
</html>`

// indexTemplate lists every exported artifact.
const indexTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="{{.Theme}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.SiteTitle}}</title>
  <link rel="stylesheet" href="style.css">
</head>
<body>
  <header class="top-bar">
    <span class="home-link">{{.SiteTitle}}</span>
    <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">
      <span class="sun-icon">&#9728;</span><span class="moon-icon">&#9790;</span>
    </button>
  </header>
  <main class="content">
    <ul class="artifact-list">
      {{range .Artifacts}}<li class="artifact-card">
        <a href="artifacts/{{.Key}}.html"><h2>{{.Title}}</h2></a>
        <p>{{.Overview}}</p>
      </li>
      {{end}}
    </ul>
  </main>
  <script src="script.js"></script>
</body>
</html>`

const cssContent = `:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --text: #212529;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --code-bg: #f1f3f5;
  --content-max-width: 900px;
}

[data-theme="dark"] {
  --bg: #1a1b1e;
  --bg-secondary: #25262b;
  --text: #c1c2c5;
  --text-muted: #909296;
  --border: #373a40;
  --accent: #4dabf7;
  --code-bg: #2c2e33;
}

body {
  margin: 0;
  background: var(--bg);
  color: var(--text);
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  line-height: 1.6;
}

a { color: var(--accent); }

.top-bar {
  display: flex;
  justify-content: space-between;
  align-items: center;
  padding: 0.75rem 1.5rem;
  border-bottom: 1px solid var(--border);
  background: var(--bg-secondary);
}

.home-link { font-weight: 600; text-decoration: none; color: var(--text); }

.theme-toggle {
  background: none;
  border: 1px solid var(--border);
  border-radius: 6px;
  color: var(--text);
  cursor: pointer;
  padding: 0.25rem 0.5rem;
}

[data-theme="dark"] .sun-icon { display: inline; }
[data-theme="dark"] .moon-icon { display: none; }
[data-theme="light"] .sun-icon { display: none; }
[data-theme="light"] .moon-icon { display: inline; }

.content {
  max-width: var(--content-max-width);
  margin: 0 auto;
  padding: 2rem 1.5rem;
}

.overview { color: var(--text-muted); }

.artifact-list { list-style: none; padding: 0; }
.artifact-card {
  border: 1px solid var(--border);
  border-radius: 8px;
  padding: 1rem 1.25rem;
  margin-bottom: 1rem;
}
.artifact-card h2 { margin: 0 0 0.25rem; font-size: 1.25rem; }

.markdown-body pre {
  background: var(--code-bg);
  border-radius: 6px;
  padding: 1rem;
  overflow-x: auto;
}

.markdown-body code {
  background: var(--code-bg);
  border-radius: 4px;
  padding: 0.1rem 0.3rem;
  font-size: 0.9em;
}

.markdown-body pre code { background: none; padding: 0; }
`

const jsContent = `(function() {
  var html = document.documentElement;
  var toggle = document.getElementById("theme-toggle");

  function stored() {
    try { return localStorage.getItem("folio-theme"); } catch(e) { return null; }
  }

  function setTheme(theme) {
    html.setAttribute("data-theme", theme);
    try { localStorage.setItem("folio-theme", theme); } catch(e) {}
  }

  var initial = stored();
  if (initial === "dark" || initial === "light") {
    setTheme(initial);
  }

  if (toggle) {
    toggle.addEventListener("click", function() {
      setTheme(html.getAttribute("data-theme") === "dark" ? "light" : "dark");
    });
  }
})();
`
