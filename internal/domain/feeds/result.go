package feeds

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// SubmissionResult is the parsed outcome of a completed feed submission.
// Complete is false when the report's status code was anything other than
// "Complete"; the transport normally converts a not-yet-ready report into
// ErrResultNotReady before it reaches this parser, so an incomplete report
// is not re-validated here.
type SubmissionResult struct {
	Complete           bool
	MessagesProcessed  int64
	MessagesSuccessful int64
	MessagesErrored    int64
	MessagesWarned     int64
	Details            []ResultDetail
}

// ResultDetail is one per-record outcome from a processing report
type ResultDetail struct {
	// MessageID matches the 1-based sequence id assigned when the feed was built
	MessageID string
	// ResultCode classifies the outcome (Error, Warning, ...)
	ResultCode string
	// MessageCode is the remote system's result message code
	MessageCode string
	// Description is the human-readable outcome description
	Description string
	// AdditionalInfo maps diagnostic element tags to their text
	AdditionalInfo map[string]string
}

// ParseSubmissionResult parses a raw feed result document. The remote
// system's output is occasionally non-strict, so parsing is lenient: minor
// malformation is recovered where feasible instead of rejected outright.
//
// A document carrying an Error element fails with *RemoteProcessingError
// holding the error's message text; this is the only failure mode. Any
// other document yields a result: counters and per-record details in
// document order for a "Complete" report, an explicitly empty result
// otherwise.
func ParseSubmissionResult(raw string) (*SubmissionResult, error) {
	doc := parseLenientXML(raw)

	if errEl := doc.findDeep("Error"); errEl != nil {
		msg := ""
		if m := errEl.find("Message"); m != nil {
			msg = m.text()
		} else {
			msg = errEl.text()
		}
		return nil, &RemoteProcessingError{Message: msg}
	}

	result := &SubmissionResult{}
	report := doc.findDeep("ProcessingReport")
	if report == nil {
		return result, nil
	}
	if status := report.find("StatusCode"); status == nil || status.text() != "Complete" {
		return result, nil
	}

	result.Complete = true
	if summary := report.find("ProcessingSummary"); summary != nil {
		result.MessagesProcessed = summary.childInt("MessagesProcessed")
		result.MessagesSuccessful = summary.childInt("MessagesSuccessful")
		result.MessagesErrored = summary.childInt("MessagesWithError")
		result.MessagesWarned = summary.childInt("MessagesWithWarning")
	}

	report.walk("Result", func(entry *xmlElement) {
		detail := ResultDetail{
			MessageID:      entry.childText("MessageID"),
			ResultCode:     entry.childText("ResultCode"),
			MessageCode:    entry.childText("ResultMessageCode"),
			Description:    entry.childText("ResultDescription"),
			AdditionalInfo: map[string]string{},
		}
		if info := entry.find("AdditionalInfo"); info != nil {
			for _, child := range info.children {
				detail.AdditionalInfo[child.name] = child.text()
			}
		}
		result.Details = append(result.Details, detail)
	})
	return result, nil
}

// xmlElement is a minimal recovered element tree, enough to navigate a
// processing report without requiring well-formed input
type xmlElement struct {
	name     string
	chardata strings.Builder
	children []*xmlElement
}

func (e *xmlElement) text() string {
	return strings.TrimSpace(e.chardata.String())
}

// find returns the first direct child with the given name
func (e *xmlElement) find(name string) *xmlElement {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// findDeep returns the first descendant with the given name, depth first
func (e *xmlElement) findDeep(name string) *xmlElement {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
		if found := c.findDeep(name); found != nil {
			return found
		}
	}
	return nil
}

// walk visits every descendant with the given name in document order
func (e *xmlElement) walk(name string, fn func(*xmlElement)) {
	for _, c := range e.children {
		if c.name == name {
			fn(c)
		}
		c.walk(name, fn)
	}
}

func (e *xmlElement) childText(name string) string {
	if c := e.find(name); c != nil {
		return c.text()
	}
	return ""
}

func (e *xmlElement) childInt(name string) int64 {
	n, err := strconv.ParseInt(e.childText(name), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseLenientXML builds an element tree from possibly malformed markup.
// The decoder runs in non-strict mode with a permissive charset reader, and
// the tree builder tolerates mismatched or stray end tags; a truncated
// document yields whatever was recovered up to the error.
func parseLenientXML(raw string) *xmlElement {
	dec := xml.NewDecoder(strings.NewReader(raw))
	dec.Strict = false
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	doc := &xmlElement{}
	stack := []*xmlElement{doc}
	for {
		tok, err := dec.Token()
		if err != nil {
			// io.EOF or unrecoverable malformation: keep what we have
			return doc
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &xmlElement{name: t.Name.Local}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, el)
			stack = append(stack, el)
		case xml.EndElement:
			// Pop to the matching open element; ignore stray end tags
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].name == t.Name.Local {
					stack = stack[:i]
					break
				}
			}
		case xml.CharData:
			stack[len(stack)-1].chardata.Write(t)
		}
	}
}
