// Package booking defines the appointment flow Sara ships with: greet,
// check availability, let the caller pick a slot, collect first name, last
// name, phone and email, create the appointment, confirm, hang up.
//
// All phrasing lives here as data. Swapping the locale pack or the wording
// never touches orchestration logic.
package booking

import (
	"github.com/coccinelle-ai/sara/pkg/domain"
	"github.com/coccinelle-ai/sara/pkg/dsl"
)

// Tool names the flow invokes. The gateway maps them onto the backend.
const (
	ToolCheckAvailability = "checkAvailability"
	ToolCreateAppointment = "createAppointment"
)

// Flow builds the canonical booking conversation. The graph is a fixed
// configuration value; construction cannot fail, so a defect here is a
// programming error and panics at startup rather than mid-call.
func Flow() *domain.Graph {
	b := dsl.New("sara-rdv")

	b.Add("node_start").Start().Go("node_accueil")

	b.Add("node_accueil").
		Say("Bonjour ! Je suis Sara, votre assistante virtuelle. Je vais vous aider à prendre un rendez-vous. Laissez-moi vérifier mes disponibilités.").
		Go("node_check_availability")

	b.Add("node_check_availability").
		Call(ToolCheckAvailability, map[string]string{"date": "{{today}}"}).
		Narrate(
			"Un instant s'il vous plaît, je vérifie mes disponibilités...",
			"Parfait, j'ai trouvé plusieurs créneaux disponibles !",
			"Désolée, je n'arrive pas à accéder au calendrier pour le moment. Je réessaie.",
		).
		Go("node_proposer_creneaux")

	b.Add("node_proposer_creneaux").
		Ask("Je peux vous proposer {{creneaux}}. Quel créneau vous convient le mieux ?",
			"creneau", domain.FieldSlotChoice).
		Reprompt("Je suis désolée, ce créneau n'est pas disponible. Je peux vous proposer {{creneaux}}. Lequel préférez-vous ?").
		Go("node_prenom")

	b.Add("node_prenom").
		Ask("Parfait ! Pour finaliser votre rendez-vous, quel est votre prénom ?",
			"prenom", domain.FieldName).
		Go("node_nom")

	b.Add("node_nom").
		Ask("Merci {{prenom}}. Et quel est votre nom de famille ?",
			"nom", domain.FieldName).
		Go("node_telephone")

	b.Add("node_telephone").
		Ask("Quel est votre numéro de téléphone ? Dictez-le chiffre par chiffre s'il vous plaît. Par exemple : zéro, six, un, deux, etc.",
			"telephone", domain.FieldPhone).
		Reprompt("Je n'ai pas bien noté votre numéro. Pouvez-vous le dicter à nouveau, chiffre par chiffre ?").
		Confirm("Très bien, je répète : {{telephone_epele}}.").
		Go("node_email")

	b.Add("node_email").
		Ask("Et enfin, quelle est votre adresse e-mail ? Dictez-la lentement en épelant les lettres. Par exemple : j, o, h, n, arobase, e, x, a, m, p, l, e, point, c, o, m.",
			"email", domain.FieldEmail).
		Reprompt("Je n'ai pas bien saisi votre adresse. Pouvez-vous l'épeler à nouveau, lettre par lettre ?").
		Confirm("Parfait, j'ai noté : {{email_epele}}.").
		Go("node_create_appointment")

	b.Add("node_create_appointment").
		Call(ToolCreateAppointment, map[string]string{
			"firstName": "{{prenom}}",
			"lastName":  "{{nom}}",
			"phone":     "{{telephone}}",
			"email":     "{{email}}",
			"datetime":  "{{creneau}}",
		}).
		Narrate(
			"Parfait ! Je crée votre rendez-vous...",
			"Votre rendez-vous est confirmé !",
			"Je suis désolée, une erreur s'est produite lors de la création du rendez-vous. Je réessaie.",
		).
		Go("node_confirmation")

	b.Add("node_confirmation").
		Say("Votre rendez-vous est confirmé pour le {{creneau}}. Vous allez recevoir un SMS et un e-mail de confirmation avec tous les détails. Merci et à très bientôt !").
		Go("node_end")

	b.Add("node_end").End()

	g, err := b.Build()
	if err != nil {
		panic("booking: invalid built-in flow: " + err.Error())
	}
	return g
}
