// Package domain contains the entities shared by the practice session:
// syllables, learner profiles, classifier verdicts and the feedback states of
// a turn. It has no dependencies on storage, transport or the classifier.
package domain
