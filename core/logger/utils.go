package logger

import (
	"encoding/json"
	"io"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *structpb.Struct)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var rawEntry json.RawMessage
		if err := decoder.Decode(&rawEntry); err != nil {
			return err
		}

		var logEntry structpb.Struct
		if err := protojson.Unmarshal(rawEntry, &logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Commands returns the command of each entry that has one, in log order.
func Commands(r io.Reader) ([][]string, error) {
	var out [][]string
	err := ReadJSONLinesLog(r, func(le *structpb.Struct) {
		cmd, ok := le.GetFields()["command"]
		if !ok {
			return
		}
		var argv []string
		for _, v := range cmd.GetListValue().GetValues() {
			argv = append(argv, v.GetStringValue())
		}
		out = append(out, argv)
	})
	return out, err
}
