package progress

import "fmt"

// CommandType enumerates every operation a client surface can request. The
// closed set replaces the original switch-on-string message dispatch.
type CommandType int

const (
	CmdRotateIfNeeded CommandType = iota
	CmdMarkUsed
	CmdToggleFavorite
	CmdAddNote
	CmdReviewWord
	CmdDetectUsage
	CmdExportData
	CmdReset
)

func (t CommandType) String() string {
	switch t {
	case CmdRotateIfNeeded:
		return "rotate_if_needed"
	case CmdMarkUsed:
		return "mark_used"
	case CmdToggleFavorite:
		return "toggle_favorite"
	case CmdAddNote:
		return "add_note"
	case CmdReviewWord:
		return "review_word"
	case CmdDetectUsage:
		return "detect_usage"
	case CmdExportData:
		return "export_data"
	case CmdReset:
		return "reset"
	default:
		return fmt.Sprintf("command(%d)", int(t))
	}
}

// Command is one tagged operation against a user's progress.
type Command struct {
	Type   CommandType
	UserID int64

	Sentence  string // CmdMarkUsed
	WordIndex int    // CmdToggleFavorite, CmdAddNote, CmdReviewWord, CmdDetectUsage
	Note      string // CmdAddNote
	URL       string // CmdDetectUsage
	Context   string // CmdDetectUsage
}

// Dispatch routes a command to its operation. The switch is exhaustive over
// CommandType.
func (s *Service) Dispatch(cmd Command) (interface{}, error) {
	switch cmd.Type {
	case CmdRotateIfNeeded:
		return s.RotateIfNeeded(cmd.UserID)
	case CmdMarkUsed:
		return s.MarkUsed(cmd.UserID, cmd.Sentence)
	case CmdToggleFavorite:
		favorite, err := s.ToggleFavorite(cmd.UserID, cmd.WordIndex)
		return map[string]bool{"is_favorite": favorite}, err
	case CmdAddNote:
		return nil, s.AddNote(cmd.UserID, cmd.WordIndex, cmd.Note)
	case CmdReviewWord:
		return nil, s.Review(cmd.UserID, cmd.WordIndex)
	case CmdDetectUsage:
		return nil, s.Detect(cmd.UserID, cmd.WordIndex, cmd.URL, cmd.Context)
	case CmdExportData:
		return s.Export(cmd.UserID)
	case CmdReset:
		return nil, s.Reset(cmd.UserID)
	default:
		return nil, fmt.Errorf("unknown command %s", cmd.Type)
	}
}
