package export

import "encoding/json"

// EncodeJSON pretty-prints data with full numeric precision.
func (e *Exporter) EncodeJSON(data *Data) ([]byte, error) {
	if err := checkPayload(data); err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// checkPayload verifies the payload matches the declared kind.
func checkPayload(data *Data) error {
	if data == nil {
		return ErrInvalidPayload
	}
	switch data.Type {
	case KindCalculator:
		_, err := data.Calculator()
		return err
	case KindRealtime:
		_, err := data.Realtime()
		return err
	default:
		return ErrInvalidPayload
	}
}
