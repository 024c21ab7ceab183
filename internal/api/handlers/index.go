package handlers

import (
	"html/template"
	"log"
	"net/http"
)

const indexHTML = `<!doctype html>
<html lang="de">
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1"/>
  <title>PLZ → Koordinaten</title>
  <style>
    body{font-family:system-ui,Segoe UI,Roboto,Arial;margin:40px;max-width:760px}
    input,button{font-size:16px;padding:10px}
    .row{display:flex;gap:10px;flex-wrap:wrap}
    .out{margin-top:18px;padding:14px;border:1px solid #ddd;border-radius:10px}
    .muted{color:#666}
    code{font-family:ui-monospace,Consolas,monospace}
  </style>
</head>
<body>
  <h1>PLZ → Koordinaten</h1>
  <p class="muted">Gibt Breitengrad/Längengrad für eine deutsche PLZ aus.</p>

  <div class="row">
    <input id="plz" inputmode="numeric" pattern="\d{5}" maxlength="5" placeholder="z. B. 64283" />
    <button id="go">Suchen</button>
  </div>

  <div class="out" id="out">
    <div class="muted">Noch keine Anfrage.</div>
  </div>

  <p class="muted" style="margin-top:18px">
    Geocoding: Nominatim / OpenStreetMap. Bitte Usage Policy beachten.
  </p>

<script>
const out = document.getElementById("out");
const messages = {
  invalid_format: "Ungültige PLZ. Erwartet: 5 Ziffern.",
  not_found: "PLZ nicht gefunden.",
  lookup_unavailable: "Dienst vorübergehend nicht verfügbar. Bitte erneut versuchen.",
};
document.getElementById("go").addEventListener("click", async () => {
  const plz = document.getElementById("plz").value.trim();
  out.textContent = "Lade...";
  try{
    const r = await fetch("/api?plz=" + encodeURIComponent(plz));
    const j = await r.json();
    if(!j.ok) throw new Error(messages[j.error] || "Fehler");
    out.innerHTML = ` + "`" + `
      <div><b>PLZ:</b> ${j.plz}</div>
      <div><b>Breitengrad:</b> <code>${j.lat}</code></div>
      <div><b>Längengrad:</b> <code>${j.lon}</code></div>
    ` + "`" + `;
  }catch(e){
    out.textContent = "Fehler: " + e.message;
  }
});
</script>
</body>
</html>`

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// Index serves the human-facing lookup page. Results are fetched from
// the JSON endpoint client-side; user input never reaches this template.
func Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, http.StatusNotFound, "not_found")
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, nil); err != nil {
		log.Printf("render index failed: %v", err)
	}
}
