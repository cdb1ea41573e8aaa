package studio

// indexTemplate renders the whole studio page from a State.
const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Theme Studio</title>
  <style>
    :root { --fg:#1d1d1f; --muted:#6e6e73; --line:#e0e0e5; --accent:#3355ff; }
    * { box-sizing: border-box; }
    body { margin:0; font:15px/1.5 system-ui, sans-serif; color:var(--fg); background:#f7f7f9; }
    header { padding:16px 24px; border-bottom:1px solid var(--line); background:#fff; display:flex; gap:16px; align-items:center; }
    header h1 { font-size:18px; margin:0; flex:1; }
    main { padding:24px; max-width:1400px; margin:0 auto; }
    form.brief { display:grid; gap:8px; grid-template-columns: 1fr 2fr auto auto; align-items:end; margin-bottom:24px; }
    form.brief label { display:flex; flex-direction:column; font-size:13px; color:var(--muted); }
    input, textarea, button { font:inherit; }
    textarea { min-height:40px; resize:vertical; }
    button { border:1px solid var(--line); background:#fff; padding:6px 14px; border-radius:6px; cursor:pointer; }
    button.primary { background:var(--accent); color:#fff; border-color:var(--accent); }
    button:disabled { opacity:.5; cursor:not-allowed; }
    .progress { list-style:none; padding:0; display:flex; gap:12px; color:var(--muted); }
    .progress li.done { color:var(--fg); }
    .progress li.current { color:var(--accent); font-weight:600; }
    .error { background:#fff0f0; border:1px solid #f3c0c0; padding:10px 14px; border-radius:6px; margin-bottom:16px; }
    .tabs { display:flex; gap:4px; border-bottom:1px solid var(--line); margin-bottom:16px; }
    .tabs button { border:none; border-bottom:2px solid transparent; border-radius:0; background:none; }
    .tabs button.active { border-bottom-color:var(--accent); color:var(--accent); }
    .themes { display:grid; grid-template-columns:repeat(auto-fit, minmax(320px, 1fr)); gap:24px; }
    .theme h2 { font-size:16px; margin:0 0 4px; }
    .theme .desc { color:var(--muted); font-size:14px; }
    .thumbs { display:grid; grid-template-columns:repeat(3, 1fr); gap:8px; margin:8px 0; }
    .thumb { position:relative; display:block; aspect-ratio:3/4; border:1px solid var(--line); border-radius:6px; overflow:hidden; background:#fff; cursor:pointer; }
    .thumb iframe { width:400%; height:400%; transform:scale(.25); transform-origin:0 0; border:0; pointer-events:none; }
    .thumb span { position:absolute; bottom:0; left:0; right:0; font-size:11px; padding:2px 6px; background:rgba(255,255,255,.9); }
    .focused iframe { width:100%; height:78vh; border:1px solid var(--line); border-radius:8px; background:#fff; }
    .actions { display:flex; gap:8px; flex-wrap:wrap; }
    .actions a { font-size:13px; color:var(--accent); }
    .desc pre { padding:8px; border-radius:6px; overflow-x:auto; font-size:12px; }
  </style>
  <style>{{codeCSS}}</style>
</head>
<body data-rev="{{.Rev}}">
  <header>
    <h1>Theme Studio{{if .CreationName}} · {{.CreationName}}{{end}}</h1>
    {{if .Themes}}<button type="button" data-action="reset">New brief</button>{{end}}
  </header>
  <main>
    <form class="brief" id="brief" enctype="multipart/form-data">
      <label>Name <input name="name" value="{{.CreationName}}" placeholder="My project"{{if .Pending}} disabled{{end}}></label>
      <label>Describe the site <textarea name="prompt" placeholder="A landing page for a neighborhood coffee roaster"{{if .Pending}} disabled{{end}}></textarea></label>
      <label>Reference <input type="file" name="attachment" accept="image/*,application/pdf,text/*"{{if .Pending}} disabled{{end}}></label>
      <button class="primary" type="submit"{{if .Pending}} disabled{{end}}>{{if .Pending}}Generating…{{else}}Generate{{end}}</button>
    </form>

    {{if .Pending}}
    <ol class="progress" id="progress">
      {{range $i, $l := .Steps}}<li class="{{if lt $i $.Step}}done{{else if eq $i $.Step}}current{{end}}">{{$l}}</li>{{end}}
    </ol>
    {{end}}

    {{if .Error}}<div class="error">{{.Error}}</div>{{end}}

    {{if .Tabs}}
    <nav class="tabs">
      {{range .Tabs}}<button type="button" class="{{if .Active}}active{{end}}" {{if .Compare}}data-action="compare"{{else}}data-select="{{.Index}}"{{end}}>{{.Label}}</button>{{end}}
    </nav>
    {{end}}

    {{if ge .Focused 0}}
      {{range .Frames}}
      <section class="focused">
        <iframe sandbox="allow-scripts" src="/frames/{{.ThemeIndex}}" title="{{.ThemeName}}"></iframe>
      </section>
      {{end}}
      {{with index .Themes .Focused}}
      <div class="actions">
        <a href="/export/{{.Index}}/markup">Download HTML</a>
        <a href="/export/{{.Index}}/prompt">Download prompt</a>
      </div>
      {{end}}
    {{else if .Themes}}
    <div class="themes">
      {{range $t := .Themes}}
      <article class="theme">
        <h2>{{$t.Name}}</h2>
        <div class="desc">{{$t.DescriptionHTML}}</div>
        <div class="thumbs">
          {{range $.Frames}}{{if eq .ThemeIndex $t.Index}}
          <a class="thumb" data-select="{{.ThemeIndex}}" title="{{.Page}}">
            <iframe sandbox="allow-scripts" src="/frames/{{.ThemeIndex}}?page={{.Page}}" tabindex="-1" loading="lazy"></iframe>
            <span>{{.Page}}</span>
          </a>
          {{end}}{{end}}
        </div>
        <div class="actions">
          <button type="button" data-select="{{$t.Index}}">Preview</button>
          <a href="/export/{{$t.Index}}/markup">Download HTML</a>
          <a href="/export/{{$t.Index}}/prompt">Download prompt</a>
        </div>
      </article>
      {{end}}
    </div>
    {{end}}
  </main>
  <script>
  (function () {
    var rev = document.body.dataset.rev;
    function post(url, body) {
      return fetch(url, { method: 'POST', body: body }).then(function (r) {
        if (!r.ok) { return r.json().then(function (e) { alert(e.error || r.statusText); }); }
      });
    }
    document.getElementById('brief').addEventListener('submit', function (ev) {
      ev.preventDefault();
      post('/api/generate', new FormData(ev.target));
    });
    document.addEventListener('click', function (ev) {
      var el = ev.target.closest('[data-select],[data-action]');
      if (!el) { return; }
      ev.preventDefault();
      if (el.dataset.select !== undefined) { post('/api/select/' + el.dataset.select); }
      else if (el.dataset.action === 'compare') { post('/api/compare'); }
      else if (el.dataset.action === 'reset') { post('/api/reset'); }
    });
    function connect() {
      var ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws/state');
      ws.onmessage = function (msg) {
        var st = JSON.parse(msg.data);
        if (String(st.rev) !== rev) { location.reload(); return; }
        var items = document.querySelectorAll('#progress li');
        items.forEach(function (li, i) {
          li.className = i < st.step ? 'done' : (i === st.step ? 'current' : '');
        });
      };
      ws.onclose = function () { setTimeout(connect, 2000); };
    }
    connect();
  })();
  </script>
</body>
</html>
`
