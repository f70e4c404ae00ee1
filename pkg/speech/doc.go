/*
Package speech is the utterance formatter: it renders "{{slot}}" templates,
turns phone numbers, emails, hours and dates into their locale-correct spoken
forms, and parses dictated caller utterances back into candidate values.

Downstream speech synthesis mispronounces raw digits and symbols; this
package is the single place encoding that correction, so the validators and
the orchestrator never need locale knowledge.
*/
package speech
