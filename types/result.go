package types

// ControlFlow represents the control flow state of evaluation
type ControlFlow int

const (
	FlowNormal    ControlFlow = iota // Normal execution
	FlowReturn                       // Return statement
	FlowBreak                        // Break statement
	FlowContinue                     // Continue statement
	FlowException                    // Runtime error being raised
)

func (f ControlFlow) String() string {
	switch f {
	case FlowNormal:
		return "normal"
	case FlowReturn:
		return "return"
	case FlowBreak:
		return "break"
	case FlowContinue:
		return "continue"
	case FlowException:
		return "exception"
	default:
		return "unknown"
	}
}

// Result represents the outcome of evaluating an expression or statement.
// This unifies normal values, control flow (return/break/continue), and errors.
type Result struct {
	Val  Value       // The value (if Flow == FlowNormal or FlowReturn)
	Flow ControlFlow // Control flow state
	Err  *Error      // Only set when Flow == FlowException
}

// Ok creates a Result for normal execution with a value
func Ok(v Value) Result {
	return Result{Val: v, Flow: FlowNormal}
}

// Return creates a Result for a return statement
func Return(v Value) Result {
	return Result{Val: v, Flow: FlowReturn}
}

// Break creates a Result for a break statement
func Break() Result {
	return Result{Flow: FlowBreak, Val: Null}
}

// Continue creates a Result for a continue statement
func Continue() Result {
	return Result{Flow: FlowContinue, Val: Null}
}

// Err creates a Result for a raised error
func Err(e *Error) Result {
	return Result{Flow: FlowException, Err: e}
}

// Fail creates an error Result from a code and a detail message
func Fail(code ErrorCode, format string, args ...interface{}) Result {
	return Err(NewError(code, format, args...))
}

// IsNormal returns true if this is normal execution
func (r Result) IsNormal() bool {
	return r.Flow == FlowNormal
}

// IsError returns true if this is an exception
func (r Result) IsError() bool {
	return r.Flow == FlowException
}

// IsReturn returns true if this is a return statement
func (r Result) IsReturn() bool {
	return r.Flow == FlowReturn
}

// IsBreak returns true if this is a break statement
func (r Result) IsBreak() bool {
	return r.Flow == FlowBreak
}

// IsContinue returns true if this is a continue statement
func (r Result) IsContinue() bool {
	return r.Flow == FlowContinue
}
