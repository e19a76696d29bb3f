package position

import (
	"fmt"
	"strings"
)

const (
	whiteDisk = "O"
	blackDisk = "X"
	moveMark  = "."
	emptyMark = " "
)

// ToDisplayText draws the board with rank 8 at the top. Legal moves of
// the side to move are marked with a dot.
func (p Position) ToDisplayText(s Side) string {
	moves := p.Moves(s)
	var sb strings.Builder
	sb.WriteString("   a b c d e f g h\n")
	sb.WriteString("  +-+-+-+-+-+-+-+-+\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d |", rank+1)
		for file := 0; file < 8; file++ {
			mask := uint64(1) << (rank*8 + file)
			switch {
			case p.White&mask != 0:
				sb.WriteString(whiteDisk)
			case p.Black&mask != 0:
				sb.WriteString(blackDisk)
			case moves&mask != 0:
				sb.WriteString(moveMark)
			default:
				sb.WriteString(emptyMark)
			}
			sb.WriteString("|")
		}
		fmt.Fprintf(&sb, " %d\n", rank+1)
	}
	sb.WriteString("  +-+-+-+-+-+-+-+-+\n")
	fmt.Fprintf(&sb, "%s (X) %d  %s (O) %d  -- %s to move\n",
		Black, p.Count(Black), White, p.Count(White), s)
	return sb.String()
}
