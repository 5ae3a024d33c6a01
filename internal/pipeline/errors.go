package pipeline

import "github.com/rotisserie/eris"

// ErrMalformedResponse indicates the model reply did not yield a parsable
// JSON array of leads. Check with eris.Is.
var ErrMalformedResponse = eris.New("malformed model response")

// ErrValidation indicates the search criteria were incomplete. The caller
// shows it inline; no state changes.
var ErrValidation = eris.New("company name or both sector and location are required")
