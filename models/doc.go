// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the item, vote, and response types shared by the
widget controller, the API client, and the journal.

# Item and Like Types

	ItemQuestion = "question"   -> POST /question_like/, field question_id
	ItemAnswer   = "answer"     -> POST /answer_like/,   field answer_id

	Like    = "like"
	Dislike = "dislike"

# Response Types

  - LikeResponse: count
  - CorrectResponse: correct
  - ErrorResponse: error, message

Required fields are pointers so a response missing them can be rejected
instead of silently decoding to zero.

# Actions

ParseAction reads the CLI form of a click:

	question:42:like
	answer:7:dislike
	correct:5

# Outcomes

Outcome is the record of one finished submission, passed to observers
such as the journal.
*/
package models
