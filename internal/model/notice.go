package model

import "fmt"

// NoticeCode classifies a user-facing condition found while parsing.
type NoticeCode string

const (
	NoticeEmptyInput         NoticeCode = "empty_input"
	NoticeUnrecognizedFormat NoticeCode = "unrecognized_format"
	NoticeLineParseFailure   NoticeCode = "line_parse_failure"
	NoticeNoRecords          NoticeCode = "no_records"
	NoticeSampleData         NoticeCode = "sample_data"
	NoticeNumberFormat       NoticeCode = "number_format"
	NoticeImbalance          NoticeCode = "imbalance"
	NoticeMissingGroups      NoticeCode = "missing_groups"
)

// Notice is a non-fatal condition the caller may surface to the user.
type Notice struct {
	Code    NoticeCode `json:"code"`
	Message string     `json:"message"`
	Line    int        `json:"line,omitempty"` // 1-based, 0 = whole file
}

func (n Notice) String() string {
	if n.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", n.Code, n.Line, n.Message)
	}
	return fmt.Sprintf("%s: %s", n.Code, n.Message)
}

// HasNotice reports whether notices contains at least one entry with code.
func HasNotice(notices []Notice, code NoticeCode) bool {
	for _, n := range notices {
		if n.Code == code {
			return true
		}
	}
	return false
}
