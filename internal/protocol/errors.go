package protocol

// Wire error codes surfaced in the "err" field of failure responses.
// These are contract with the host tooling; do not rename.
const (
	errJSONParse   = "json_parse"   // malformed request line
	errMissingName = "missing_name" // name absent or empty
	errMissingType = "missing_type" // define without a protocol name
	errMissingVal  = "missing_value"
	errMissingData = "missing_data" // define_raw without a data array
	errEmptyData   = "empty_data"   // define_raw with zero samples
	errRawTooLong  = "raw_too_long" // define_raw beyond the sample cap
	errBadValue    = "bad_value"    // value present but not parseable
	errUnknownType = "unknown_type" // protocol name lookup failed
	errUnknownCmd  = "unknown_cmd"
	errNotFound    = "not_found"
	errStorageFull = "storage_full"
	errSendFailed  = "send_failed"
	errLearnFailed = "learn_timeout"
)
