// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package testutil provides a fake Q&A server and page fixtures for tests.

	server := testutil.NewFakeServer(t)
	server.SetCount(models.ItemQuestion, "42", 7)
	server.SetCorrect("5", true)

	// GET any path serves SamplePage with csrftoken and sessionid cookies
	// POST /question_like/, /answer_like/, /make_correct/ are recorded

	reqs := server.Requests()
	testutil.AssertForm(t, reqs[0], map[string]string{"question_id": "42", "like_type": "like"})

POST handlers reject requests whose X-CSRFToken does not equal
TestCSRFToken with 403. Handle overrides a path to simulate failures.
*/
package testutil
