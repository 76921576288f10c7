package notification

import "fmt"

// Event identifies which transactional message to send. There is one event
// per lifecycle target status, one for the initial application confirmation,
// plus the staff alert and the account-lockout notice.
type Event string

const (
	EventApplicationReceived Event = "postulacion_recibida"
	EventInReview            Event = "postulacion_en_revision"
	EventInterview           Event = "postulacion_entrevista"
	EventHiringProcess       Event = "postulacion_proceso_contratacion"
	EventHired               Event = "postulacion_contratado"
	EventRejected            Event = "postulacion_rechazado"
	EventNewApplication      Event = "vacante_nueva_postulacion"
	EventAccountLocked       Event = "cuenta_bloqueada"
)

// TemplateContext carries the values the templates interpolate.
type TemplateContext struct {
	CandidateName string
	VacancyTitle  string
	CompanyName   string
	ExtraInfo     string
}

// Compose selects subject and body for an event. It is a pure function of its
// inputs; unknown events return ok=false so callers can log and drop instead
// of mailing an empty message.
func Compose(event Event, tc TemplateContext) (subject, body string, ok bool) {
	switch event {
	case EventApplicationReceived:
		return "Postulación recibida",
			fmt.Sprintf("Hola %s,\n\nHemos recibido tu postulación a la vacante \"%s\" de %s. Te avisaremos cuando avance el proceso.\n\nSaludos,\nSistema de Gestión de Candidatos",
				tc.CandidateName, tc.VacancyTitle, tc.CompanyName), true
	case EventInReview:
		return "Tu postulación está en revisión",
			fmt.Sprintf("Hola %s,\n\nTu postulación a \"%s\" pasó al estado En revisión.\n\nSaludos,\nSistema de Gestión de Candidatos",
				tc.CandidateName, tc.VacancyTitle), true
	case EventInterview:
		return "¡Tienes una entrevista!",
			fmt.Sprintf("Hola %s,\n\nTu postulación a \"%s\" avanzó a la etapa de Entrevista. %s te contactará para coordinar.\n\nSaludos,\nSistema de Gestión de Candidatos",
				tc.CandidateName, tc.VacancyTitle, tc.CompanyName), true
	case EventHiringProcess:
		return "Proceso de contratación iniciado",
			fmt.Sprintf("Hola %s,\n\nTu postulación a \"%s\" entró en Proceso de contratación.\n\nSaludos,\nSistema de Gestión de Candidatos",
				tc.CandidateName, tc.VacancyTitle), true
	case EventHired:
		return "¡Felicidades, fuiste contratado!",
			fmt.Sprintf("Hola %s,\n\n%s te ha seleccionado para la vacante \"%s\". ¡Bienvenido!\n\nSaludos,\nSistema de Gestión de Candidatos",
				tc.CandidateName, tc.CompanyName, tc.VacancyTitle), true
	case EventRejected:
		return "Resultado de tu postulación",
			fmt.Sprintf("Hola %s,\n\nLamentamos informarte que tu postulación a \"%s\" no continuará en el proceso. Gracias por participar.\n\nSaludos,\nSistema de Gestión de Candidatos",
				tc.CandidateName, tc.VacancyTitle), true
	case EventNewApplication:
		return "Nueva postulación recibida",
			fmt.Sprintf("Hola,\n\nLa vacante \"%s\" recibió una nueva postulación de %s.\n\nSaludos,\nSistema de Gestión de Candidatos",
				tc.VacancyTitle, tc.CandidateName), true
	case EventAccountLocked:
		return "🔒 Cuenta bloqueada temporalmente",
			fmt.Sprintf("Hola,\n\nTu cuenta ha sido bloqueada temporalmente debido a múltiples intentos fallidos de acceso.\n\nEl bloqueo se levantará automáticamente en %s minutos.\n\nSi no fuiste tú, por favor contacta al administrador.\n\nSaludos,\nSistema de Gestión de Candidatos",
				tc.ExtraInfo), true
	}

	return "", "", false
}

// ForStatus maps an application target status to its notification event.
func ForStatus(status string) (Event, bool) {
	switch status {
	case "Postulado":
		return EventApplicationReceived, true
	case "En revisión":
		return EventInReview, true
	case "Entrevista":
		return EventInterview, true
	case "Proceso de contratación":
		return EventHiringProcess, true
	case "Contratado":
		return EventHired, true
	case "Rechazado":
		return EventRejected, true
	}
	return "", false
}
