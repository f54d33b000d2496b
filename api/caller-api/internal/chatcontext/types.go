// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_chatcontext

// Role identifies who produced a turn. The set is closed: the system
// preamble, the remote caller (the shopkeeper on the phone), and the agent.
type Role string

const (
	RoleSystem Role = "system"
	RoleCaller Role = "user"
	RoleAgent  Role = "assistant"
)

// Turn is a single utterance in a conversation history.
type Turn struct {
	Role        Role
	Text        string
	Interrupted bool
}

// History is the ordered conversation context handed to the LLM backend.
// It is owned by the call session for the lifetime of the call.
type History []Turn

// Clone returns an independent copy of the history.
func (h History) Clone() History {
	out := make(History, len(h))
	copy(out, h)
	return out
}

// Append returns the history with a turn added.
func (h History) Append(role Role, text string) History {
	return append(h, Turn{Role: role, Text: text})
}

// firstNonSystem returns the index of the first turn after the leading run
// of system turns, or -1 if only system turns remain.
func (h History) firstNonSystem() int {
	for i, t := range h {
		if t.Role != RoleSystem {
			return i
		}
	}
	return -1
}
