package server

import (
	"html/template"
)

// editScript is appended to editable previews. Clicks open a field, typing
// updates the draft, Enter or leaving the field commits and Escape cancels.
// Requests run one at a time in the order they were made, and the page
// reloads once the queue drains.
const editScript = `<script class="no-print">
(function () {
  var mode = document.getElementById("resume-content").dataset.mode;
  var queue = Promise.resolve();
  var pending = 0;
  var blurTimer = null;
  function send(path, body, reload) {
    body.mode = mode;
    if (reload) { pending++; }
    queue = queue.then(function () {
      return fetch("/api/edit/" + path, {
        method: "POST",
        headers: {"Content-Type": "application/json"},
        credentials: "same-origin",
        body: JSON.stringify(body)
      }).catch(function () {});
    }).then(function () {
      if (reload && --pending === 0) { location.reload(); }
    });
  }
  function settle(input) {
    input.dataset.done = "true";
    clearTimeout(blurTimer);
  }
  document.addEventListener("click", function (ev) {
    var el = ev.target.closest("[data-edit-target]");
    if (el && !el.classList.contains("edit-input")) {
      // begin commits the open draft on the server, so the pending blur is dropped
      clearTimeout(blurTimer);
      send("begin", {target: el.dataset.editTarget}, true);
      return;
    }
    var slot = ev.target.closest("[data-edit-placeholder]");
    if (slot) {
      clearTimeout(blurTimer);
      send("placeholder", {kind: slot.dataset.editPlaceholder}, true);
    }
  });
  document.addEventListener("input", function (ev) {
    var input = ev.target.closest(".edit-input");
    if (input && !input.dataset.done) {
      send("draft", {value: input.value}, false);
    }
  });
  document.addEventListener("focusout", function (ev) {
    var input = ev.target.closest(".edit-input");
    if (!input || input.dataset.done) { return; }
    blurTimer = setTimeout(function () {
      settle(input);
      send("commit", {value: input.value}, true);
    }, 150);
  });
  document.addEventListener("keydown", function (ev) {
    var input = ev.target.closest(".edit-input");
    if (!input || input.dataset.done) { return; }
    if (ev.key === "Enter" && !(input.tagName === "TEXTAREA" && ev.shiftKey)) {
      ev.preventDefault();
      settle(input);
      send("commit", {value: input.value}, true);
    } else if (ev.key === "Escape") {
      settle(input);
      send("cancel", {}, true);
    }
  });
})();
</script>
`

var wizardPage = template.Must(template.New("wizard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>{{.Section.Title}} - Resume Builder</title>
<style>
body { margin: 0; font-family: "Inter", Arial, sans-serif; background: #f9fafb; color: #111827; }
.layout { display: grid; grid-template-columns: 420px 1fr; min-height: 100vh; }
.wizard { padding: 24px; background: #fff; border-right: 1px solid #e5e7eb; }
.steps { display: flex; gap: 8px; list-style: none; padding: 0; flex-wrap: wrap; }
.steps a { text-decoration: none; color: #6b7280; font-size: 13px; }
.steps a.current { color: #2563eb; font-weight: 600; }
form label { display: block; font-size: 13px; margin-top: 10px; }
form input, form textarea, form select { width: 100%; box-sizing: border-box; padding: 6px; }
.pending li { font-size: 13px; }
.errors { color: #b91c1c; font-size: 13px; }
.nav { display: flex; justify-content: space-between; margin-top: 24px; }
iframe { width: 100%; height: 100%; border: 0; }
#my-documents { display: none; }
</style>
</head>
<body>
<div class="layout">
<div class="wizard" data-section="{{.Section}}">
<a id="my-documents" href="/resume?section=preview">My Documents</a>
<ol class="steps">{{range .Steps}}<li><a href="/resume?section={{.Section}}&template={{$.Template.ID}}"{{if .Current}} class="current"{{end}}>{{.Section.Title}}</a></li>{{end}}</ol>
<h1>{{.Section.Title}}</h1>
<div class="errors" id="errors"></div>
{{if eq .Section "personal-info"}}
<form data-method="PUT" data-action="/api/wizard/personal-info" data-next="{{.Next}}">
{{with .Document.PersonalInfo}}
<label>First Name <input name="firstName" value="{{.FirstName}}"></label>
<label>Last Name <input name="lastName" value="{{.LastName}}"></label>
<label>Role Applying For <input name="roleApplyingFor" value="{{.RoleApplyingFor}}"></label>
<label>Email <input name="email" type="email" value="{{.Email}}"></label>
<label>Phone <input name="phone" value="{{.Phone}}"></label>
<label>Address <input name="address" value="{{.Address}}"></label>
<label>City <input name="city" value="{{.City}}"></label>
<label>State <input name="state" value="{{.State}}"></label>
<label>Zip Code <input name="zipCode" value="{{.ZipCode}}"></label>
<label>Website <input name="website" value="{{.Website}}"></label>
<label>About Me <textarea name="summary">{{.Summary}}</textarea></label>
{{end}}
<button type="submit">Save &amp; Continue</button>
</form>
{{else if eq .Section "experience"}}
<label><input type="checkbox" id="fresher"{{if .Document.IsFresher}} checked{{end}}> I am a fresher</label>
{{if not .Document.IsFresher}}
<form data-method="POST" data-action="/api/wizard/experience/pending">
<label>Company <input name="company"></label>
<label>Position <input name="position"></label>
<label>Location <input name="location"></label>
<label>Start Date <input name="startDate" placeholder="MM/YYYY"></label>
<label>End Date <input name="endDate" placeholder="MM/YYYY"></label>
<label><input type="checkbox" name="current"> Currently working here</label>
<label>Description <textarea name="description"></textarea></label>
<button type="submit">Add Experience</button>
</form>
<ul class="pending">{{range .Pending.Experience}}<li>{{.Position}} at {{.Company}} <button data-remove="/api/wizard/experience/pending/{{.ID}}">Remove</button></li>{{end}}</ul>
{{end}}
{{else if eq .Section "education"}}
<form data-method="POST" data-action="/api/wizard/education/pending">
<label>Institution <input name="institution"></label>
<label>Degree <input name="degree"></label>
<label>Field of Study <input name="field"></label>
<label>Location <input name="location"></label>
<label>Start Date <input name="startDate" placeholder="MM/YYYY"></label>
<label>End Date <input name="endDate" placeholder="MM/YYYY"></label>
<label>GPA <input name="gpa"></label>
<label>Description <textarea name="description"></textarea></label>
<button type="submit">Add Education</button>
</form>
<ul class="pending">{{range .Pending.Education}}<li>{{.Degree}}, {{.Institution}} <button data-remove="/api/wizard/education/pending/{{.ID}}">Remove</button></li>{{end}}</ul>
{{else if eq .Section "skills"}}
<form data-method="POST" data-action="/api/wizard/skills/pending">
<label>Skill <input name="name"></label>
<label>Proficiency <select name="level"><option value="">Select</option>{{range .Levels}}<option value="{{.}}">{{.}}</option>{{end}}</select></label>
<button type="submit">Add Skill</button>
</form>
<ul class="pending">{{range .Pending.Skills}}<li>{{.Name}} ({{.Level}}) <button data-remove="/api/wizard/skills/pending/{{.ID}}">Remove</button></li>{{end}}</ul>
{{else}}
<form data-method="POST" data-action="/api/export" data-download="true">
<button type="submit">Download PDF</button>
</form>
{{end}}
<div class="nav">
{{if ne .Previous .Section}}<a href="/resume?section={{.Previous}}&template={{.Template.ID}}">Back</a>{{else}}<span></span>{{end}}
{{if .Saves}}<button id="save-section" data-action="/api/wizard/{{.Section}}/save" data-next="{{.Next}}">Save &amp; Continue</button>{{end}}
</div>
</div>
<iframe title="Resume preview" src="/preview?template={{.Template.ID}}"></iframe>
</div>
<script>
(function () {
  var template = {{.Template.ID}};
  function goTo(section) { location.href = "/resume?section=" + section + "&template=" + template; }
  function showErrors(body) {
    var el = document.getElementById("errors");
    var lines = body.fields ? Object.values(body.fields) : [body.error || "Request failed"];
    el.textContent = lines.join(" ");
  }
  function send(method, url, body) {
    return fetch(url, {method: method, credentials: "same-origin",
      headers: {"Content-Type": "application/json"}, body: body ? JSON.stringify(body) : undefined});
  }
  document.querySelectorAll("form[data-action]").forEach(function (form) {
    form.addEventListener("submit", function (ev) {
      ev.preventDefault();
      var body = {};
      new FormData(form).forEach(function (v, k) { body[k] = v; });
      form.querySelectorAll("input[type=checkbox][name]").forEach(function (c) { body[c.name] = c.checked; });
      if (form.dataset.download) { body = {template: template}; }
      send(form.dataset.method, form.dataset.action, body).then(function (resp) {
        if (!resp.ok) { return resp.json().then(showErrors); }
        if (form.dataset.download) {
          return resp.blob().then(function (blob) {
            var name = (resp.headers.get("Content-Disposition") || "").split("filename=")[1] || "resume.pdf";
            var a = document.createElement("a");
            a.href = URL.createObjectURL(blob);
            a.download = name.replace(/"/g, "");
            a.click();
          });
        }
        if (form.dataset.next) { goTo(form.dataset.next); } else { location.reload(); }
      });
    });
  });
  document.querySelectorAll("[data-remove]").forEach(function (btn) {
    btn.addEventListener("click", function () { send("DELETE", btn.dataset.remove).then(function () { location.reload(); }); });
  });
  var save = document.getElementById("save-section");
  if (save) {
    save.addEventListener("click", function () {
      send("POST", save.dataset.action).then(function (resp) {
        if (!resp.ok) { return resp.json().then(showErrors); }
        goTo(save.dataset.next);
      });
    });
  }
  var fresher = document.getElementById("fresher");
  if (fresher) {
    fresher.addEventListener("change", function () {
      send("PUT", "/api/resume/fresher", {isFresher: fresher.checked}).then(function () { location.reload(); });
    });
  }
  fetch("/api/session", {credentials: "same-origin", headers: localStorage.token ? {Authorization: "Bearer " + localStorage.token} : {}})
    .then(function (resp) { return resp.json(); })
    .then(function (info) { if (info.authenticated) { document.getElementById("my-documents").style.display = "inline"; } });
})();
</script>
</body>
</html>
`))

var templatesPage = template.Must(template.New("templates").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<title>Choose a template - Resume Builder</title>
<style>
body { margin: 0; font-family: "Inter", Arial, sans-serif; background: #f9fafb; }
.gallery { display: grid; grid-template-columns: repeat(auto-fill, minmax(480px, 1fr)); gap: 24px; padding: 24px; }
.card { background: #fff; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,.08); padding: 16px; }
.card iframe { width: 100%; height: 680px; border: 0; }
</style>
</head>
<body>
<div class="gallery">
{{range .}}<div class="card" data-template="{{.ID}}">
<h2>{{.Name}}</h2>
<p>{{.Description}}</p>
<iframe title="{{.Name}} sample" src="/preview?mode=sample&template={{.ID}}"></iframe>
<a href="/resume?template={{.ID}}">Use this template</a>
</div>
{{end}}</div>
</body>
</html>
`))
