package docai

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
)

// RawResponseJSON returns the most recent raw Document AI response as JSON,
// for debugging. It is only available after a successful Recognize call.
func (r *Recognizer) RawResponseJSON() (string, error) {
	if r.lastResponse == nil {
		return "", fmt.Errorf("no Document AI response available")
	}
	data, err := protojson.Marshal(r.lastResponse)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
