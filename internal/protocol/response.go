package protocol

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/ir"
)

// Response shapes. Each command produces exactly one of these as a
// single JSON line; distinct structs keep the field sets stable on the
// wire instead of relying on omitempty pruning a kitchen-sink type.

type statusResponse struct {
	OK  bool   `json:"ok"`
	Msg string `json:"msg"`
}

type errorResponse struct {
	OK  bool   `json:"ok"`
	Err string `json:"err"`
}

type codeSummary struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type listResponse struct {
	OK    bool          `json:"ok"`
	Codes []codeSummary `json:"codes"`
}

type decodedCodeResponse struct {
	OK    bool   `json:"ok"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Bits  uint16 `json:"bits"`
	Value string `json:"value"`
}

type rawCodeResponse struct {
	OK    bool     `json:"ok"`
	Name  string   `json:"name"`
	Type  string   `json:"type"`
	Freq  uint32   `json:"freq"`
	Data  []uint16 `json:"data"`
}

// writeLine serialises v and writes it as one newline-terminated line.
func writeLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serialising response: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}

func writeStatus(w io.Writer, msg string) error {
	return writeLine(w, statusResponse{OK: true, Msg: msg})
}

func writeError(w io.Writer, code string) error {
	return writeLine(w, errorResponse{OK: false, Err: code})
}

// writeCode reports a learned code back to the host: the decoded triple
// with the value rendered as hex text, or the raw payload with carrier
// frequency and microsecond samples.
func writeCode(w io.Writer, code ir.Code) error {
	if code.Kind == ir.KindRaw {
		data := code.Pulses
		if data == nil {
			data = []uint16{}
		}
		return writeLine(w, rawCodeResponse{
			OK:   true,
			Name: code.Name,
			Type: ir.RawTypeName,
			Freq: code.Freq,
			Data: data,
		})
	}
	return writeLine(w, decodedCodeResponse{
		OK:    true,
		Name:  code.Name,
		Type:  code.TypeName(),
		Bits:  code.Bits,
		Value: fmt.Sprintf("0x%X", code.Value),
	})
}

func writeList(w io.Writer, summaries []ir.Summary) error {
	codes := make([]codeSummary, 0, len(summaries))
	for _, s := range summaries {
		codes = append(codes, codeSummary{Name: s.Name, Type: s.Type})
	}
	return writeLine(w, listResponse{OK: true, Codes: codes})
}
