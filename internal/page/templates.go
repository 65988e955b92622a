package page

import "html/template"

const layout = `{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} · Pack</title>
</head>
<body>
<header>
<a href="/">Pack</a>
{{if .User}}<nav><a href="{{.Landing}}">Dashboard</a> <a href="/settings">Settings</a> <button id="logout">Log out</button></nav>{{end}}
</header>
<main>{{template "content" .}}</main>
<script>
const api = (path, body) => fetch("/api" + path, {
  method: "POST", credentials: "same-origin",
  headers: {"Content-Type": "application/json"},
  body: JSON.stringify(body),
}).then(async r => ({ok: r.ok, body: await r.json()}));
const out = document.getElementById("logout");
if (out) out.onclick = () => api("/logout", {}).then(() => location.assign("/login"));
</script>
{{block "script" .}}{{end}}
</body>
</html>{{end}}`

const loginPage = `{{define "content"}}
<h1>Log in</h1>
<form id="login">
<label>Username <input name="username" autocomplete="username" required></label>
<label>Password <input name="password" type="password" autocomplete="current-password" required></label>
<button>Log in</button>
<p id="error" role="alert"></p>
</form>
<p>New to Pack? <a href="/signup">Create an account</a></p>
{{end}}
{{define "script"}}<script>
document.getElementById("login").onsubmit = e => {
  e.preventDefault();
  const f = new FormData(e.target);
  api("/login", {username: f.get("username"), password: f.get("password")}).then(r => {
    if (r.ok) location.assign(r.body.data.redirect_url);
    else document.getElementById("error").textContent = r.body.error;
  });
};
</script>{{end}}`

const signupPage = `{{define "content"}}
<h1>Create an account</h1>
<form id="signup">
<label>Username <input name="username" required></label>
<label>Email <input name="email" type="email" required></label>
<label>First name <input name="first_name" required></label>
<label>Password <input name="password" type="password" autocomplete="new-password" required></label>
<label>I am a <select name="role"><option>Student</option><option>Teacher</option></select></label>
<label>Year group <input name="year_group" type="number" min="7" max="13"></label>
<button>Sign up</button>
<p id="error" role="alert"></p>
</form>
{{end}}
{{define "script"}}<script>
document.getElementById("signup").onsubmit = e => {
  e.preventDefault();
  const f = Object.fromEntries(new FormData(e.target));
  f.year_group = Number(f.year_group) || 0;
  api("/signup", f).then(r => {
    if (r.ok) location.assign(r.body.data.redirect_url);
    else document.getElementById("error").textContent = r.body.error;
  });
};
</script>{{end}}`

const studentDashboard = `{{define "content"}}
<h1>Hi {{.User.FirstName}}</h1>
<section><h2>Schoolwork</h2><div id="schoolwork" data-src="/api/schoolwork"></div></section>
<section><h2>Classes</h2><div id="classes" data-src="/api/classes"></div></section>
{{end}}`

const teacherDashboard = `{{define "content"}}
<h1>Welcome, {{.User.FirstName}}</h1>
<section><h2>Your classes</h2><div id="classes" data-src="/api/classes"></div></section>
{{end}}`

const settingsPage = `{{define "content"}}
<h1>Settings</h1>
<dl><dt>Username</dt><dd>{{.User.Username}}</dd><dt>Email</dt><dd>{{.User.Email}}</dd></dl>
<section><h2>Change email</h2><form id="email"></form></section>
<section><h2>Change password</h2><form id="password"></form></section>
{{if eq .User.Role "Student"}}<section><h2>Progress emails</h2><form id="progress"></form></section>{{end}}
{{end}}`

func parse(name, body string) *template.Template {
	t := template.Must(template.New(name).Parse(layout))
	return template.Must(t.Parse(body))
}

var templates = map[string]*template.Template{
	"login":    parse("login", loginPage),
	"signup":   parse("signup", signupPage),
	"student":  parse("student", studentDashboard),
	"teacher":  parse("teacher", teacherDashboard),
	"settings": parse("settings", settingsPage),
}
