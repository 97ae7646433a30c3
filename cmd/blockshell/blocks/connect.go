package blocks

// CanConnect reports whether child may be plugged into socket.
//
//   - value socket: child's output must satisfy the socket's check.
//   - statement socket: child must accept a previous connection.
//   - dummy socket: never.
//
// A false result is an ordinary rejection, not an error.
func CanConnect(child *BlockKind, socket Socket) bool {
	if child == nil {
		return false
	}
	switch socket.Kind {
	case SocketValue:
		return IsCompatible(child.Output(), socket.Check)
	case SocketStatement:
		return child.Chaining().AcceptsPrevious
	default:
		return false
	}
}

// CanChain reports whether lower may attach below upper in a statement stack.
func CanChain(upper, lower *BlockKind) bool {
	if upper == nil || lower == nil {
		return false
	}
	return upper.Chaining().AcceptsNext && lower.Chaining().AcceptsPrevious
}
