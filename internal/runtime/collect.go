package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/coccinelle-ai/sara/pkg/domain"
	"github.com/coccinelle-ai/sara/pkg/validate"
)

// collect handles the caller's answer to an outstanding question. A valid
// answer fills the slot and moves the call forward; an invalid one re-emits
// the same question (optionally reworded) without advancing, however many
// times it takes.
func (o *Orchestrator) collect(ctx context.Context, st *domain.State, node domain.Node, utterance string) (domain.Outcome, error) {
	o.markHeard(st, utterance)

	value, err := o.validateAnswer(node, st, utterance)
	if err != nil {
		var verr *validate.Error
		if !errors.As(err, &verr) {
			return domain.Outcome{}, err
		}

		st.Retries++
		o.emitPromptRetry(ctx, st, node, verr)
		o.logger.Debug("invalid answer, re-asking",
			"session_id", st.SessionID, "node_id", node.ID, "slot", node.Slot,
			"attempt", st.Retries, "reason", verr.Error())

		tmpl := node.Reprompt
		if tmpl == "" {
			tmpl = node.Prompt
		}
		text, rerr := o.locale.Render(tmpl, st.Slots)
		if rerr != nil {
			return domain.Outcome{}, fmt.Errorf("node %s: %w", node.ID, rerr)
		}
		st.History = append(st.History, domain.Turn{NodeID: node.ID, Said: text})
		return domain.Outcome{Kind: domain.OutcomePrompt, Text: text}, nil
	}

	st.Slots[node.Slot] = value
	o.storeSpokenForms(st, node, value)
	o.emitSlotFilled(ctx, st, node)

	st.Asked = false
	st.Retries = 0

	var say []string
	if node.Confirm != "" {
		echo, err := o.locale.Render(node.Confirm, st.Slots)
		if err != nil {
			return domain.Outcome{}, fmt.Errorf("node %s: %w", node.ID, err)
		}
		say = append(say, echo)
		st.History = append(st.History, domain.Turn{NodeID: node.ID, Said: echo})
	}

	next, ok := o.graph.Next(node.ID)
	if !ok {
		return domain.Outcome{}, &domain.GraphIntegrityError{Reason: fmt.Sprintf("prompt node %q has no successor", node.ID)}
	}
	st.Current = next
	return o.drive(ctx, st, say)
}

// validateAnswer runs the utterance through the locale parser and the field
// validator declared on the node.
func (o *Orchestrator) validateAnswer(node domain.Node, st *domain.State, utterance string) (string, error) {
	switch node.Field {
	case domain.FieldPhone:
		return validate.Phone(o.locale.ParseDigits(utterance))
	case domain.FieldEmail:
		return validate.Email(o.locale.ParseSpelled(utterance))
	case domain.FieldSlotChoice:
		return validate.OfferedSlot(st.Offered, o.locale.NormalizeHour)(utterance)
	default:
		return validate.Name(utterance)
	}
}

// storeSpokenForms derives the spoken rendition of values the flow echoes
// back, so confirmation templates can reference "<slot>_epele".
func (o *Orchestrator) storeSpokenForms(st *domain.State, node domain.Node, value string) {
	switch node.Field {
	case domain.FieldPhone:
		st.Slots[node.Slot+"_epele"] = o.locale.SpeakPhone(value)
	case domain.FieldEmail:
		st.Slots[node.Slot+"_epele"] = o.locale.SpeakEmail(value)
	case domain.FieldSlotChoice:
		st.Slots[node.Slot+"_parle"] = o.locale.SpeakHour(value)
	}
}
