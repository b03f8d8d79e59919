// Package response writes the HTML error pages shared by middleware and
// controllers.
package response

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/shashiranjanraj/ventas/pkg/logger"
)

var errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>{{.Status}} | {{.Title}}</title>
</head>
<body>
<main class="error">
<h1>{{.Status}}</h1>
<p>{{.Message}}</p>
<a href="/">Volver al inicio</a>
</main>
</body>
</html>
`))

type errorData struct {
	Status  int
	Title   string
	Message string
}

// Error renders the error page with status and message.
func Error(w http.ResponseWriter, status int, message string) {
	var buf bytes.Buffer
	data := errorData{Status: status, Title: http.StatusText(status), Message: message}
	if err := errorPage.Execute(&buf, data); err != nil {
		logger.Error("response: render error page", "error", err)
		http.Error(w, message, status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "No tienes permiso para realizar esta acción.")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "La página solicitada no existe.")
}

// TooManyRequests sends a 429.
func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, "Demasiados intentos. Inténtalo de nuevo más tarde.")
}

// PageExpired sends Laravel's 419 for CSRF failures.
func PageExpired(w http.ResponseWriter) {
	Error(w, 419, "La página ha expirado. Recarga e inténtalo de nuevo.")
}

// InternalError sends a 500 without leaking details.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Error interno del servidor.")
}
