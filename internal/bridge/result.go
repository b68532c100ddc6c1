package bridge

// ErrorValue is the host value reported when a card cannot be added.
const ErrorValue = "Error"

// Result is the tagged outcome of one handled action. On failure Value is
// unused and the host receives the call site's sentinel instead.
type Result struct {
	Action Action
	Value  any
	Err    error

	sentinel any
}

func succeeded(action Action, value any) Result {
	return Result{Action: action, Value: value}
}

// failed records err and the sentinel reported to the host. A nil sentinel
// means the host receives an undefined value.
func failed(action Action, sentinel any, err error) Result {
	return Result{Action: action, Err: err, sentinel: sentinel}
}

// OK reports whether the action succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// HostValue returns the value delivered to the host: Value on success and
// the sentinel (false, "Error" or nil) on failure.
func (r Result) HostValue() any {
	if r.Err != nil {
		return r.sentinel
	}
	return r.Value
}
