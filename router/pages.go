package router

import "net/http"

// The pages are deliberately minimal shells; the board itself is rendered
// by whatever frontend consumes pkg/client and pkg/board.

func boardPage(w http.ResponseWriter, r *http.Request) {
	writePage(w, `<!DOCTYPE html>
<html>
<head><title>Sticky Board</title></head>
<body>
<h1>Sticky Board</h1>
<p>Connect a client to /api/notes and /ws to use the board.</p>
</body>
</html>`)
}

func loginPage(w http.ResponseWriter, r *http.Request) {
	writePage(w, `<!DOCTYPE html>
<html>
<head><title>Sign in</title></head>
<body>
<h1>Sign in</h1>
<form id="login">
<label>Email <input name="email" type="email" required></label>
<label>Password <input name="password" type="password" required></label>
<button type="submit">Sign in</button>
</form>
<script>
document.getElementById("login").addEventListener("submit", async (e) => {
	e.preventDefault();
	const data = Object.fromEntries(new FormData(e.target));
	const res = await fetch("/auth/login", {
		method: "POST",
		headers: {"Content-Type": "application/json"},
		body: JSON.stringify(data),
	});
	if (res.ok) window.location = "/";
});
</script>
</body>
</html>`)
}

func writePage(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(body))
}
