package web

import "html/template"

// formData feeds the form template.
type formData struct {
	Years        []int
	ManualFields []string
}

var formTemplate = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html lang="no">
<head>
<meta charset="utf-8">
<title>Cristin årsrapport</title>
<style>
body { font-family: sans-serif; max-width: 44rem; margin: 2rem auto; padding: 0 1rem; }
label { display: block; margin-top: 1rem; font-weight: bold; }
input, select, textarea { width: 100%; box-sizing: border-box; padding: 0.4rem; }
textarea { height: 4rem; }
button { margin-top: 1.5rem; padding: 0.6rem 1.4rem; }
details { margin-top: 1.5rem; }
</style>
</head>
<body>
<h1>Cristin årsrapport</h1>
<p>Oppgi Cristin person-ID og rapportår. Publikasjoner hentes og klassifiseres
automatisk; feltene under kan fylles ut manuelt.</p>
<form method="post" action="/generate">
  <label for="person_id">Cristin person-ID</label>
  <input id="person_id" name="person_id" placeholder="123456" required pattern="[0-9]+">

  <label for="year">Rapportår</label>
  <select id="year" name="year">
  {{range .Years}}<option value="{{.}}">{{.}}</option>
  {{end}}</select>

  <details>
    <summary>Manuelle felter</summary>
    {{range .ManualFields}}
    <label for="{{.}}">{{.}}</label>
    <textarea id="{{.}}" name="{{.}}"></textarea>
    {{end}}
  </details>

  <button type="submit">Generer rapport</button>
</form>
</body>
</html>
`))
