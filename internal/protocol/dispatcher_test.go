package protocol

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/engine"
	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/hardware"
	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/ir"
)

func newTestDispatcher() (*Dispatcher, *hardware.Simulator, *ir.Store) {
	sim := hardware.NewSimulator()
	store := ir.NewStore()
	eng := engine.New(sim, sim, engine.Options{
		PollInterval: time.Millisecond,
		RepeatGap:    time.Millisecond,
	})
	return NewDispatcher(store, eng), sim, store
}

// dispatch runs one command line and returns every response line parsed
// as a generic object.
func dispatch(t *testing.T, d *Dispatcher, line string) []map[string]any {
	t.Helper()

	var buf bytes.Buffer
	if err := d.Dispatch([]byte(line), &buf); err != nil {
		t.Fatalf("Dispatch(%s) error = %v", line, err)
	}

	var out []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var obj map[string]any
		if err := json.Unmarshal([]byte(raw), &obj); err != nil {
			t.Fatalf("response line %q is not JSON: %v", raw, err)
		}
		out = append(out, obj)
	}
	return out
}

// one asserts exactly one response line and returns it.
func one(t *testing.T, d *Dispatcher, line string) map[string]any {
	t.Helper()
	resps := dispatch(t, d, line)
	if len(resps) != 1 {
		t.Fatalf("got %d response lines for %s, want 1", len(resps), line)
	}
	return resps[0]
}

func wantErr(t *testing.T, resp map[string]any, code string) {
	t.Helper()
	if resp["ok"] != false || resp["err"] != code {
		t.Errorf("response = %v, want {ok:false err:%s}", resp, code)
	}
}

func wantMsg(t *testing.T, resp map[string]any, msg string) {
	t.Helper()
	if resp["ok"] != true || resp["msg"] != msg {
		t.Errorf("response = %v, want {ok:true msg:%s}", resp, msg)
	}
}

func TestDispatchPing(t *testing.T) {
	d, _, _ := newTestDispatcher()
	wantMsg(t, one(t, d, `{"cmd":"ping"}`), "pong")
}

func TestDispatchMalformedLine(t *testing.T) {
	d, _, _ := newTestDispatcher()
	wantErr(t, one(t, d, `{"cmd":`), errJSONParse)
	// The dispatcher survives; the next command works.
	wantMsg(t, one(t, d, `{"cmd":"ping"}`), "pong")
}

func TestDispatchUnknownCommand(t *testing.T) {
	d, _, _ := newTestDispatcher()
	wantErr(t, one(t, d, `{"cmd":"reboot"}`), errUnknownCmd)
}

func TestDispatchListEmpty(t *testing.T) {
	d, _, _ := newTestDispatcher()
	resp := one(t, d, `{"cmd":"list"}`)
	codes, ok := resp["codes"].([]any)
	if !ok {
		t.Fatalf("list response missing codes array: %v", resp)
	}
	if len(codes) != 0 {
		t.Errorf("codes = %v, want empty array", codes)
	}
}

func TestDispatchDefineAndList(t *testing.T) {
	d, _, _ := newTestDispatcher()

	resp := one(t, d, `{"cmd":"define","name":"tv1","type":"NEC","value":"0x20DF10EF","bits":32}`)
	wantMsg(t, resp, "defined")

	list := one(t, d, `{"cmd":"list"}`)
	codes := list["codes"].([]any)
	if len(codes) != 1 {
		t.Fatalf("codes = %v, want one entry", codes)
	}
	entry := codes[0].(map[string]any)
	if entry["name"] != "tv1" || entry["type"] != "NEC" {
		t.Errorf("entry = %v, want {name:tv1 type:NEC}", entry)
	}
}

func TestDispatchDefineValidationOrder(t *testing.T) {
	d, _, _ := newTestDispatcher()

	tests := []struct {
		line string
		want string
	}{
		{`{"cmd":"define"}`, errMissingName},
		{`{"cmd":"define","name":"x"}`, errMissingType},
		{`{"cmd":"define","name":"x","type":"NEC"}`, errMissingVal},
		{`{"cmd":"define","name":"x","type":"NOPE","value":"1"}`, errUnknownType},
		{`{"cmd":"define","name":"x","type":"NEC","value":"zzz"}`, errBadValue},
	}
	for _, tt := range tests {
		wantErr(t, one(t, d, tt.line), tt.want)
	}
}

func TestDispatchDefineDecimalValue(t *testing.T) {
	d, _, store := newTestDispatcher()

	wantMsg(t, one(t, d, `{"cmd":"define","name":"v","type":"SONY","value":"2704","bits":12}`), "defined")
	code, _ := store.Get("v")
	if code.Value != 2704 || code.Bits != 12 {
		t.Errorf("code = %+v, want value 2704, bits 12", code)
	}
}

func TestDispatchDefineDefaultBits(t *testing.T) {
	d, _, store := newTestDispatcher()
	wantMsg(t, one(t, d, `{"cmd":"define","name":"v","type":"NEC","value":"0x1"}`), "defined")
	code, _ := store.Get("v")
	if code.Bits != 32 {
		t.Errorf("Bits = %d, want default 32", code.Bits)
	}
}

func TestDispatchDefineRaw(t *testing.T) {
	d, _, store := newTestDispatcher()

	resp := one(t, d, `{"cmd":"define_raw","name":"tv2","freq":38000,"data":[9024,4512,560,560]}`)
	wantMsg(t, resp, "defined")

	code, ok := store.Get("tv2")
	if !ok {
		t.Fatal("tv2 not stored")
	}
	if code.Kind != ir.KindRaw || code.Freq != 38000 {
		t.Errorf("code = %+v, want raw at 38000 Hz", code)
	}
	if len(code.Pulses) != 4 || code.Pulses[0] != 9024 {
		t.Errorf("Pulses = %v, want [9024 4512 560 560]", code.Pulses)
	}
}

func TestDispatchDefineRawValidation(t *testing.T) {
	d, _, store := newTestDispatcher()

	wantErr(t, one(t, d, `{"cmd":"define_raw","name":"x"}`), errMissingData)
	wantErr(t, one(t, d, `{"cmd":"define_raw","name":"x","data":[]}`), errEmptyData)

	// 513 samples: rejected, store untouched.
	samples := make([]string, 513)
	for i := range samples {
		samples[i] = "100"
	}
	line := `{"cmd":"define_raw","name":"x","data":[` + strings.Join(samples, ",") + `]}`
	wantErr(t, one(t, d, line), errRawTooLong)
	if store.Len() != 0 {
		t.Errorf("store.Len() = %d after rejected define_raw, want 0", store.Len())
	}
}

func TestDispatchDefineRawClampsSamples(t *testing.T) {
	d, _, store := newTestDispatcher()
	wantMsg(t, one(t, d, `{"cmd":"define_raw","name":"x","data":[70000,100]}`), "defined")
	code, _ := store.Get("x")
	if code.Pulses[0] != 0xFFFF || code.Pulses[1] != 100 {
		t.Errorf("Pulses = %v, want [65535 100]", code.Pulses)
	}
}

func TestDispatchDefineRawDefaultFreq(t *testing.T) {
	d, _, store := newTestDispatcher()
	wantMsg(t, one(t, d, `{"cmd":"define_raw","name":"x","data":[100]}`), "defined")
	code, _ := store.Get("x")
	if code.Freq != ir.DefaultCarrierHz {
		t.Errorf("Freq = %d, want default %d", code.Freq, ir.DefaultCarrierHz)
	}
}

func TestDispatchStorageFull(t *testing.T) {
	d, _, store := newTestDispatcher()

	for i := 0; i < ir.Capacity; i++ {
		line := `{"cmd":"define","name":"code-` + string(rune('a'+i)) + `","type":"NEC","value":"1"}`
		wantMsg(t, one(t, d, line), "defined")
	}
	wantErr(t, one(t, d, `{"cmd":"define","name":"overflow","type":"NEC","value":"1"}`), errStorageFull)

	// Redefining an existing name still succeeds at capacity.
	wantMsg(t, one(t, d, `{"cmd":"define","name":"code-a","type":"SONY","value":"2","bits":12}`), "defined")
	if store.Len() != ir.Capacity {
		t.Errorf("store.Len() = %d, want %d", store.Len(), ir.Capacity)
	}
}

func TestDispatchLearnStorageFull(t *testing.T) {
	d, sim, store := newTestDispatcher()

	for i := 0; i < ir.Capacity; i++ {
		line := `{"cmd":"define","name":"code-` + string(rune('a'+i)) + `","type":"NEC","value":"1"}`
		wantMsg(t, one(t, d, line), "defined")
	}

	// The capture succeeds; storing it under a new name cannot.
	sim.Inject(hardware.Capture{Protocol: ir.ProtocolNEC, Value: 0x20DF10EF, Bits: 32})
	resps := dispatch(t, d, `{"cmd":"learn","name":"overflow","timeout_ms":500}`)
	if len(resps) != 2 {
		t.Fatalf("got %d response lines, want ready ack + error", len(resps))
	}
	wantMsg(t, resps[0], "learn_ready")
	wantErr(t, resps[1], errStorageFull)

	if store.Len() != ir.Capacity {
		t.Errorf("store.Len() = %d, want %d", store.Len(), ir.Capacity)
	}
	if _, ok := store.Get("overflow"); ok {
		t.Error("rejected capture must not be stored")
	}

	// Learning into an existing name still succeeds at capacity.
	sim.Inject(hardware.Capture{Protocol: ir.ProtocolSony, Value: 0xA90, Bits: 12})
	resps = dispatch(t, d, `{"cmd":"learn","name":"code-a","timeout_ms":500}`)
	if len(resps) != 2 || resps[1]["ok"] != true {
		t.Fatalf("relearning existing name at capacity failed: %v", resps)
	}
	code, _ := store.Get("code-a")
	if code.Protocol != ir.ProtocolSony {
		t.Errorf("code-a protocol = %v, want replaced with SONY", code.Protocol)
	}
}

func TestDispatchErase(t *testing.T) {
	d, _, store := newTestDispatcher()

	wantErr(t, one(t, d, `{"cmd":"erase","name":"missing"}`), errNotFound)
	wantErr(t, one(t, d, `{"cmd":"erase"}`), errMissingName)

	one(t, d, `{"cmd":"define","name":"tv1","type":"NEC","value":"1"}`)
	wantMsg(t, one(t, d, `{"cmd":"erase","name":"tv1"}`), "erased")
	if store.Len() != 0 {
		t.Errorf("store.Len() = %d after erase, want 0", store.Len())
	}
}

func TestDispatchSendDecodedScenario(t *testing.T) {
	d, sim, _ := newTestDispatcher()

	one(t, d, `{"cmd":"define","name":"tv1","type":"NEC","value":"0x20DF10EF","bits":32}`)
	wantMsg(t, one(t, d, `{"cmd":"send","name":"tv1","repeats":2}`), "sent")

	// Three transmissions of the NEC triple: one initial plus two repeats.
	txs := sim.Transmissions()
	if len(txs) != 3 {
		t.Fatalf("transmissions = %d, want 3", len(txs))
	}
	for _, tx := range txs {
		if tx.Protocol != ir.ProtocolNEC || tx.Value != 0x20DF10EF || tx.Bits != 32 {
			t.Errorf("transmission = %+v, want NEC/0x20DF10EF/32", tx)
		}
	}
	if !sim.Enabled() {
		t.Error("receiver left disabled after send")
	}
}

func TestDispatchSendRawRoundTrip(t *testing.T) {
	d, sim, _ := newTestDispatcher()

	one(t, d, `{"cmd":"define_raw","name":"tv2","freq":38000,"data":[9024,4512,560,560]}`)
	wantMsg(t, one(t, d, `{"cmd":"send","name":"tv2","repeats":0}`), "sent")

	txs := sim.Transmissions()
	if len(txs) != 1 {
		t.Fatalf("transmissions = %d, want exactly 1", len(txs))
	}
	if txs[0].FreqHz != 38000 {
		t.Errorf("FreqHz = %d, want 38000", txs[0].FreqHz)
	}
	want := []uint16{9024, 4512, 560, 560}
	if len(txs[0].Pulses) != len(want) {
		t.Fatalf("Pulses = %v, want %v", txs[0].Pulses, want)
	}
	for i := range want {
		if txs[0].Pulses[i] != want[i] {
			t.Errorf("Pulses[%d] = %d, want %d", i, txs[0].Pulses[i], want[i])
		}
	}
}

func TestDispatchSendErrors(t *testing.T) {
	d, sim, _ := newTestDispatcher()

	wantErr(t, one(t, d, `{"cmd":"send"}`), errMissingName)
	wantErr(t, one(t, d, `{"cmd":"send","name":"nope"}`), errNotFound)

	one(t, d, `{"cmd":"define","name":"tv1","type":"NEC","value":"1"}`)
	sim.FailDecoded = true
	wantErr(t, one(t, d, `{"cmd":"send","name":"tv1"}`), errSendFailed)
	if !sim.Enabled() {
		t.Error("receiver left disabled after failed send")
	}
}

func TestDispatchLearnSuccess(t *testing.T) {
	d, sim, store := newTestDispatcher()

	sim.Inject(hardware.Capture{Protocol: ir.ProtocolNEC, Value: 0x20DF10EF, Bits: 32})

	resps := dispatch(t, d, `{"cmd":"learn","name":"btn","timeout_ms":500}`)
	if len(resps) != 2 {
		t.Fatalf("got %d response lines, want ready ack + result", len(resps))
	}
	wantMsg(t, resps[0], "learn_ready")

	result := resps[1]
	if result["ok"] != true || result["name"] != "btn" || result["type"] != "NEC" {
		t.Errorf("result = %v, want learned NEC code named btn", result)
	}
	if result["value"] != "0x20DF10EF" {
		t.Errorf("value = %v, want hex text 0x20DF10EF", result["value"])
	}
	if result["bits"] != float64(32) {
		t.Errorf("bits = %v, want 32", result["bits"])
	}

	if _, ok := store.Get("btn"); !ok {
		t.Error("learned code not stored")
	}
}

func TestDispatchLearnRawResult(t *testing.T) {
	d, sim, _ := newTestDispatcher()

	ticks := make([]uint16, 15)
	for i := range ticks {
		ticks[i] = 300
	}
	sim.Inject(hardware.Capture{RawTicks: ticks})

	resps := dispatch(t, d, `{"cmd":"learn","name":"fan","timeout_ms":500}`)
	result := resps[1]
	if result["type"] != ir.RawTypeName {
		t.Fatalf("type = %v, want RAW", result["type"])
	}
	if result["freq"] != float64(38000) {
		t.Errorf("freq = %v, want 38000", result["freq"])
	}
	data, ok := result["data"].([]any)
	if !ok || len(data) != len(ticks)-1 {
		t.Errorf("data = %v, want %d samples", result["data"], len(ticks)-1)
	}
}

func TestDispatchLearnTimeout(t *testing.T) {
	d, _, store := newTestDispatcher()

	start := time.Now()
	resps := dispatch(t, d, `{"cmd":"learn","name":"btn","timeout_ms":30}`)
	if len(resps) != 2 {
		t.Fatalf("got %d response lines, want 2", len(resps))
	}
	wantMsg(t, resps[0], "learn_ready")
	wantErr(t, resps[1], errLearnFailed)

	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("learn returned after %v, before its deadline", elapsed)
	}
	if store.Len() != 0 {
		t.Error("timed-out learn mutated the store")
	}
}

func TestDispatchLearnMissingName(t *testing.T) {
	d, _, _ := newTestDispatcher()
	// Name is validated before the ready ack: exactly one error line.
	wantErr(t, one(t, d, `{"cmd":"learn"}`), errMissingName)
}
