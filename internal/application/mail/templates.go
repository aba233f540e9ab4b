package mail

import (
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/medilink-notifier/internal/domain"
)

const loginURL = "https://medilink-app.com/login"

// view is the data both templates render.
type view struct {
	Subject   string
	Heading   string
	Intro     string
	Code      string
	LoginURL  string
	Year      int
	CodeValid string
}

type content struct {
	heading   string
	textIntro string
	htmlIntro string
	withLogin bool
}

var contents = map[domain.MailSubject]content{
	domain.SubjectAccountActivated: {
		heading:   "Félicitations !",
		textIntro: "Merci d'avoir créé un compte sur notre plateforme.\nVotre compte est maintenant activé !",
		htmlIntro: "Votre compte MediLink a été activé avec succès. Vous pouvez maintenant vous connecter et profiter de tous nos services.",
		withLogin: true,
	},
	domain.SubjectActivationCode: {
		heading:   "Bonjour,",
		textIntro: "Merci d'avoir créé un compte sur notre plateforme.\nVoici le code d'activation de votre compte. Veuillez le saisir pour activer votre compte.",
		htmlIntro: "Merci d'avoir créé un compte sur notre plateforme MediLink. Pour finaliser votre inscription, veuillez utiliser le code de vérification ci-dessous.",
	},
	domain.SubjectForgotPassword: {
		heading:   "Bonjour,",
		textIntro: "Voici le code de réinitialisation de votre mot de passe. Veuillez le saisir pour réinitialiser votre mot de passe.",
		htmlIntro: "Vous avez demandé la réinitialisation de votre mot de passe. Veuillez utiliser le code de vérification ci-dessous pour continuer.",
	},
	domain.SubjectChangePassword: {
		heading:   "Bonjour,",
		textIntro: "Voici le code de réinitialisation de votre mot de passe. Veuillez le saisir pour réinitialiser votre mot de passe.",
		htmlIntro: "Vous avez demandé la réinitialisation de votre mot de passe. Veuillez utiliser le code de vérification ci-dessous pour continuer.",
	},
}

var textTmpl = texttemplate.Must(texttemplate.New("text").Parse(`{{.Heading}}

{{.Intro}}
{{- if .Code}}

Code : {{.Code}}

{{.CodeValid}}
Si vous n'êtes pas à l'origine de cette demande, vous pouvez ignorer cet email.
{{- end}}
{{- if .LoginURL}}

Se connecter : {{.LoginURL}}
{{- end}}

© {{.Year}} MediLink. Tous droits réservés.
`))

var htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Subject}}</title>
  <style>
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f5f5f5; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #2fa7bb; padding: 20px; text-align: center; border-top-left-radius: 5px; border-top-right-radius: 5px; }
    .header h1 { color: white; margin: 0; font-size: 24px; }
    .content { background-color: white; padding: 30px; border-bottom-left-radius: 5px; border-bottom-right-radius: 5px; box-shadow: 0 2px 5px rgba(0, 0, 0, 0.1); }
    .verification-code { font-size: 32px; font-weight: bold; text-align: center; margin: 30px 0; letter-spacing: 5px; color: #2fa7bb; }
    .message { line-height: 1.6; margin-bottom: 30px; }
    .footer { text-align: center; margin-top: 30px; color: #999; font-size: 12px; }
    .button { display: inline-block; background-color: #2fa7bb; color: white; text-decoration: none; padding: 12px 30px; border-radius: 4px; font-weight: bold; margin: 20px 0; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>MediLink</h1></div>
    <div class="content">
      <h2>{{.Heading}}</h2>
      <p class="message">{{.Intro}}</p>
      {{- if .Code}}
      <div class="verification-code">{{.Code}}</div>
      <p>{{.CodeValid}}</p>
      <p>Si vous n'êtes pas à l'origine de cette demande, vous pouvez ignorer cet email.</p>
      {{- end}}
      {{- if .LoginURL}}
      <div style="text-align: center;"><a href="{{.LoginURL}}" class="button">Se connecter</a></div>
      {{- end}}
    </div>
    <div class="footer">
      <p>&copy; {{.Year}} MediLink. Tous droits réservés.</p>
      <p>Cet email a été envoyé automatiquement, merci de ne pas y répondre.</p>
    </div>
  </div>
</body>
</html>
`))
