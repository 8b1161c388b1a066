package step

import "fmt"

// Sentinel errors for conditions that carry no parameters.
var (
	// ErrNoDataSection is returned when a file has no DATA;...ENDSEC;
	// block to decode.
	ErrNoDataSection = fmt.Errorf("step: no DATA section found")
)

// BlockParseError reports a single data-section block that could not be
// parsed as an instance declaration. Decode does not abort on this: the
// block's slot is left nil, mirroring the source parser's
// warn-and-fall-back-to-empty-slot behavior.
type BlockParseError struct {
	Block  string
	Reason string
}

func (e *BlockParseError) Error() string {
	return fmt.Sprintf("step: could not parse block %q: %s", e.Block, e.Reason)
}
