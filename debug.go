package gimbal

import (
	"fmt"

	"go.uber.org/zap"
)

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("gimbal debug: %s on disposed node %q (ID %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("gimbal: tree depth exceeds threshold",
			zap.String("node", n.Name),
			zap.Int("depth", depth),
			zap.Int("threshold", debugMaxTreeDepth))
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if c := len(n.children); c > debugMaxChildCount {
		logger.Warn("gimbal: child count exceeds threshold",
			zap.String("node", n.Name),
			zap.Int("children", c),
			zap.Int("threshold", debugMaxChildCount))
	}
}
