package auth

import (
	"bytes"
	"html/template"
	"net/url"
)

const magicLinkSubject = "Tu enlace de acceso"

var magicLinkTmpl = template.Must(template.New("magic-link").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <p>Hola {{.Name}},</p>
  <p>Usa el siguiente enlace para ingresar. Vence en {{.Minutes}} minutos y solo puede usarse una vez.</p>
  <p><a href="{{.URL}}">Ingresar</a></p>
  <p>Si no solicitaste este acceso, ignora este correo.</p>
</body>
</html>`))

type magicLinkMail struct {
	Name    string
	URL     string
	Minutes int
}

// magicLinkURL arma {backend}/auth/magic-login?token=..&email=..
func magicLinkURL(backendURL, email, token string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("email", email)
	return backendURL + "/auth/magic-login?" + q.Encode()
}

func renderMagicLink(m magicLinkMail) (string, error) {
	var buf bytes.Buffer
	if err := magicLinkTmpl.Execute(&buf, m); err != nil {
		return "", err
	}
	return buf.String(), nil
}
