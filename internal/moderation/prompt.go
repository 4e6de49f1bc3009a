package moderation

import (
	"fmt"
	"strings"
)

// ContentPlaceholder marks where the message text is substituted into a
// policy template.
const ContentPlaceholder = "{{content}}"

// DefaultPolicyTemplate asks the model for a 0..1000 violation score in the
// "score|reason" format.
const DefaultPolicyTemplate = `Determine how well the posts sent by users are suitable for posting on social networking sites.
This networking site has these rules:
- Treat everyone with respect. Absolutely no harassment, witch hunting, sexism, racism, or hate speech will be tolerated.
- No spam or self-promotion (server invites, advertisements, etc) without permission from a staff member. However, please do not interpret just posting a URL as advertising.
- No age-restricted or obscene content. This includes text, images, or links featuring nudity, sex, hard violence, or other graphically disturbing content.
Decide the score of the content posted by the user based on these rules (from 0 to 1000). 0 is a very good post that does not violate the rules, and 1000 is a post that violates the rules perfectly.

Do not output 1000 unless there is a clear discriminatory term. They should be on a much lower score.
Do not output high scores for submissions such as "a" or "あ". These are probably just tests, and there is nothing wrong with them.

If the score is 0, you don't need to output the reason.

Specified format: score|reason
Example for "wtf": 400|possibly offensive language
Example for "Here is": 0|
Example for "ちんちん": 700|possibly sexually explicit language

Reasons should be output in detail; do not use ambiguous terms such as discriminatory terms.

Post content:
{{content}}

Bad score and reason:`

// PolicyPrompt is an immutable policy template with exactly one
// substitution point.
type PolicyPrompt struct {
	before string
	after  string
}

// NewPolicyPrompt validates tmpl and splits it around ContentPlaceholder.
func NewPolicyPrompt(tmpl string) (PolicyPrompt, error) {
	if n := strings.Count(tmpl, ContentPlaceholder); n != 1 {
		return PolicyPrompt{}, fmt.Errorf("moderation: policy template must contain %s exactly once, found %d", ContentPlaceholder, n)
	}
	before, after, _ := strings.Cut(tmpl, ContentPlaceholder)
	return PolicyPrompt{before: before, after: after}, nil
}

// MustPolicyPrompt is NewPolicyPrompt for templates known at compile time.
func MustPolicyPrompt(tmpl string) PolicyPrompt {
	p, err := NewPolicyPrompt(tmpl)
	if err != nil {
		panic(err)
	}
	return p
}

// Render substitutes content verbatim. No escaping is applied; JSON encoding
// of the request takes care of that.
func (p PolicyPrompt) Render(content string) string {
	return p.before + content + p.after
}
