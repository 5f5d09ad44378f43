package rendering

// template3 is a two column layout: header, about, skills, experience, education.
// Clickable fields carry data-edit-target; placeholders for empty sections
// carry data-edit-placeholder instead.
const template3 = `{{define "input"}}{{if .Multiline}}<textarea name="draft" class="edit-input" data-edit-target="{{.Target}}" placeholder="{{.Placeholder}}" autofocus>{{.Draft}}</textarea>{{else}}<input type="text" name="draft" class="edit-input" data-edit-target="{{.Target}}" value="{{.Draft}}" placeholder="{{.Placeholder}}" autofocus>{{end}}{{end -}}
{{define "content"}}{{if .Text}}{{.Text}}{{else if or .Target .Slot}}<span class="placeholder">{{.Placeholder}}</span>{{end}}{{end -}}
{{define "h1"}}{{if .Editing}}{{template "input" .}}{{else}}<h1{{if .Target}} class="editable" data-edit-target="{{.Target}}"{{end}}>{{template "content" .}}</h1>{{end}}{{end -}}
{{define "h3"}}{{if .Editing}}{{template "input" .}}{{else}}<h3{{if .Target}} class="editable" data-edit-target="{{.Target}}"{{else if .Slot}} class="editable" data-edit-placeholder="{{.Slot}}"{{end}}>{{template "content" .}}</h3>{{end}}{{end -}}
{{define "p"}}{{if .Editing}}{{template "input" .}}{{else}}<p{{if .Target}} class="editable" data-edit-target="{{.Target}}"{{else if .Slot}} class="editable" data-edit-placeholder="{{.Slot}}"{{end}}>{{template "content" .}}</p>{{end}}{{end -}}
{{define "span"}}{{if .Editing}}{{template "input" .}}{{else}}<span{{if .Target}} class="editable" data-edit-target="{{.Target}}"{{end}}>{{template "content" .}}</span>{{end}}{{end -}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>{{.Title}}</title>
<style>
body { margin: 0; background: #f3f4f6; font-family: "Inter", "Helvetica Neue", Arial, sans-serif; }
.a4-container { width: 210mm; min-height: 297mm; margin: 24px auto; background: #fefffc; box-shadow: 0 4px 16px rgba(0,0,0,.12); }
.resume-template { box-sizing: border-box; padding: 14mm 12mm; color: #1e1e1e; }
.resume-template h1 { font-family: "Poppins", Arial, sans-serif; font-size: 30px; font-weight: 800; text-transform: uppercase; margin: 0; }
.resume-template .role { font-size: 18px; font-weight: 500; padding-bottom: 4px; }
.resume-template .contact { font-size: 13px; color: #4b5563; }
.resume-template .sep { padding: 0 4px; }
.resume-template section { margin-top: 18px; border-top: 1px solid #1e1e1e; padding-top: 8px; }
.resume-template h2 { font-family: "Poppins", Arial, sans-serif; font-size: 15px; letter-spacing: .08em; text-transform: uppercase; margin: 0 0 8px; }
.resume-template h3 { font-size: 14px; font-weight: 700; margin: 0; }
.resume-template p { font-size: 13px; line-height: 1.5; margin: 2px 0; }
.resume-template .skills { display: flex; gap: 24px; }
.resume-template .skills ul { flex: 1; margin: 0; padding-left: 18px; font-size: 13px; }
.resume-template .entry { margin-bottom: 12px; }
.resume-template .entry-head { display: flex; justify-content: space-between; align-items: baseline; }
.resume-template .dates { font-size: 12px; font-weight: 600; }
.resume-template .placeholder { color: #9ca3af; font-style: italic; font-weight: normal; text-transform: none; }
.resume-template .editable { cursor: pointer; border-radius: 4px; }
.resume-template .editable:hover { background: #eff6ff; }
.resume-template .edit-input { width: 100%; font: inherit; border: 0; outline: none; box-shadow: 0 2px 8px rgba(0,0,0,.15); border-radius: 4px; padding: 2px 4px; }
.resume-template textarea.edit-input { min-height: 72px; resize: vertical; }
.resume-template .add-skill, .resume-template .contact-edit { font-size: 12px; color: #2563eb; background: none; border: 0; cursor: pointer; }
@media print { .no-print { display: none !important; } }
</style>
</head>
<body>
<div id="resume-preview" class="a4-container">
<div id="resume-content" class="resume-template {{.TemplateID}}" data-mode="{{.Mode}}">
<header>
<div class="name">{{template "h1" .Name}}</div>
<div class="role">{{template "span" .Role}}</div>
<div class="contact">{{if .Contact.Editing}}{{template "input" .Contact}}{{else}}{{template "span" .City}}<span class="sep">|</span>{{template "span" .Email}}<span class="sep">|</span>{{template "span" .Website}}{{if .Contact.Target}} <span class="contact-edit no-print" data-edit-target="{{.Contact.Target}}">Edit</span>{{end}}{{end}}</div>
</header>
<section class="about">
<h2>About Me</h2>
{{template "p" .Summary}}
</section>
<section class="skills-section">
<h2>Skills</h2>
<div class="skills">
<ul class="professional">{{range .ProfessionalSkills}}<li>{{template "span" .}}</li>{{end}}</ul>
<ul class="technical">{{range .TechnicalSkills}}<li>{{template "span" .}}</li>{{end}}</ul>
</div>
{{if .Editable}}{{if .NewSkill.Editing}}{{template "input" .NewSkill}}{{else}}<button type="button" class="add-skill no-print" data-edit-target="{{.NewSkill.Target}}">+ Add skill</button>{{end}}{{end}}
</section>
<section class="experience">
<h2>Experience</h2>
{{range .Experience}}<div class="entry">
<div class="entry-head">{{template "h3" .Title}}<div class="dates">{{template "p" .Dates}}</div></div>
<div class="company">{{template "p" .Company}}</div>
{{template "p" .Description}}
</div>
{{end}}</section>
<section class="education">
<h2>Education</h2>
{{range .Education}}<div class="entry">
<div class="entry-head">{{template "h3" .Degree}}<div class="dates">{{template "p" .Dates}}</div></div>
<div class="institution">{{template "p" .Institution}}</div>
{{template "p" .Description}}
</div>
{{end}}</section>
</div>
</div>
</body>
</html>
`
