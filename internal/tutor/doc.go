// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package tutor produces tutoring replies for the chat view.

The package defines the Tutor interface the UI talks to and a LocalTutor
implementation that answers entirely offline. LocalTutor evaluates simple
arithmetic questions directly and answers topic questions from built-in
explanation templates. Replies use $...$ math spans so the mathrender
pipeline can typeset them.

# Key Types

Tutor - Interface with Reply (whole answer) and ReplyStream (incremental).
LocalTutor - Offline implementation with a configurable streaming pace.
StreamChunk - One piece of a streamed reply; the final chunk has Done set.

# Usage

	t := tutor.NewLocalTutor()
	answer, err := t.Reply(ctx, history, "what is 12 * 4")

Streaming delivers words through a callback from the calling goroutine:

	err := t.ReplyStream(ctx, history, question, func(c tutor.StreamChunk) {
		program.Send(replyChunkMsg{content: c.Content, done: c.Done})
	})
*/
package tutor
