// Package protocol implements the tairitsu line-oriented stdio
// protocol: set/show/load/play/suggest/analyze/quit.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/nullmove/tairitsu/pkg/bit"
	"github.com/nullmove/tairitsu/pkg/board"
	"github.com/nullmove/tairitsu/pkg/eval"
	"github.com/nullmove/tairitsu/pkg/player"
	"github.com/nullmove/tairitsu/pkg/search"
)

// Protocol holds the current game state and loaded evaluator/depths
// for one tairitsu session.
type Protocol struct {
	state     board.GameState
	evaluator eval.Evaluator
	midDepth  int
	endDepth  int
	solver    *search.EndgameSolver
	searcher  *search.MidgameSearcher
}

// New returns a Protocol at the standard opening with no evaluator
// loaded.
func New() *Protocol {
	return &Protocol{
		state:    board.NewGameState(),
		solver:   search.NewEndgameSolver(),
		searcher: search.NewMidgameSearcher(),
	}
}

// Run reads one command per line from r and writes replies to w until
// quit or EOF.
func (p *Protocol) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" {
			return nil
		}
		reply, err := p.handle(line)
		if err != nil {
			fmt.Fprintf(bw, "error %v\n", err)
			bw.Flush()
			continue
		}
		if reply != "" {
			fmt.Fprintln(bw, reply)
		}
		bw.Flush()
	}
	return scanner.Err()
}

func (p *Protocol) handle(line string) (string, error) {
	fields := strings.Fields(line)
	command, args := fields[0], fields[1:]
	switch command {
	case "set":
		return "", p.cmdSet(args)
	case "show":
		return p.cmdShow(args)
	case "load":
		return "", p.cmdLoad(args)
	case "play":
		return "", p.cmdPlay(args)
	case "suggest":
		return p.cmdSuggest(args)
	case "analyze":
		return p.cmdAnalyze(args)
	default:
		return "", fmt.Errorf("unknown command %q", command)
	}
}

// cmdSet parses "<black:16hex><white:16hex><b|w>" as one token.
func (p *Protocol) cmdSet(args []string) error {
	if len(args) != 1 || len(args[0]) != 33 {
		return fmt.Errorf("usage: set <16hex><16hex><b|w>")
	}
	arg := args[0]
	black, err := strconv.ParseUint(arg[0:16], 16, 64)
	if err != nil {
		return fmt.Errorf("black bitboard: %w", err)
	}
	white, err := strconv.ParseUint(arg[16:32], 16, 64)
	if err != nil {
		return fmt.Errorf("white bitboard: %w", err)
	}
	var color board.Color
	switch arg[32] {
	case 'b':
		color = board.Black
	case 'w':
		color = board.White
	default:
		return fmt.Errorf("side to move must be 'b' or 'w', got %q", arg[32])
	}
	p.state = board.FromBoardAndColor(board.Board{Black: black, White: white}, color)
	return nil
}

// cmdShow replies "{black:16hex}{white:16hex}{b|w}{legal:16hex}{+|-}".
func (p *Protocol) cmdShow(args []string) (string, error) {
	if len(args) != 0 {
		return "", fmt.Errorf("usage: show")
	}
	side := byte('b')
	if p.state.Current == board.White {
		side = 'w'
	}
	terminal := byte('-')
	if p.state.LegalMoves == 0 && p.state.Board.FindLegalMoves(p.state.Current.Opponent()) == 0 {
		terminal = '+'
	}
	return fmt.Sprintf("%016x%016x%c%016x%c",
		p.state.Board.Black, p.state.Board.White, side, p.state.LegalMoves, terminal), nil
}

// cmdLoad parses "<path> <midDepth> <endDepth>" and loads an
// evaluator model from path.
func (p *Protocol) cmdLoad(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: load <path> <midDepth> <endDepth>")
	}
	midDepth, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("midDepth: %w", err)
	}
	endDepth, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("endDepth: %w", err)
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	ev, err := eval.LoadLinearPatternEvaluator(f)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	p.evaluator = ev
	p.midDepth = midDepth
	p.endDepth = endDepth
	return nil
}

// cmdPlay applies a move, given as a two-character coordinate or the
// literal "pass".
func (p *Protocol) cmdPlay(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: play <coordinate|pass>")
	}
	if args[0] == "pass" {
		if p.state.LegalMoves != 0 {
			return fmt.Errorf("pass requested but legal moves exist")
		}
		p.state.Play(board.None)
		return nil
	}
	coord, ok := board.ParseCoord(args[0])
	if !ok {
		return fmt.Errorf("invalid coordinate %q", args[0])
	}
	if p.state.LegalMoves&coord.Bit() == 0 {
		return fmt.Errorf("illegal move %v", coord)
	}
	p.state.Play(coord)
	return nil
}

// cmdSuggest returns the principal move of the current state at the
// loaded search depths, via the same endgame/midgame dispatch rule as
// player.SearchingPlayer. The move's score is not reported.
func (p *Protocol) cmdSuggest(args []string) (string, error) {
	if len(args) != 0 {
		return "", fmt.Errorf("usage: suggest")
	}
	if p.evaluator == nil {
		return "", fmt.Errorf("no model loaded")
	}
	sp := player.NewSearchingPlayer(p.evaluator, p.midDepth, p.endDepth)
	move := sp.GetMove(p.state)
	return move.String(), nil
}

// cmdAnalyze returns "move score" for every legal move, sorted by
// descending score from the side to move's perspective.
func (p *Protocol) cmdAnalyze(args []string) (string, error) {
	if len(args) != 0 {
		return "", fmt.Errorf("usage: analyze")
	}
	if p.evaluator == nil {
		return "", fmt.Errorf("no model loaded")
	}
	type scored struct {
		move  board.Coords
		score float32
	}
	var results []scored
	moves := p.state.LegalMoves
	for moves != 0 {
		idx := bit.TrailingZeros(moves)
		moves &^= bit.Board(1) << uint(idx)
		coord := board.Coords(idx)
		next := p.state.PlayCopied(coord)
		score := -p.evaluateState(next)
		results = append(results, scored{move: coord, score: score})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].score > results[j].score })
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s %v", r.move, r.score)
	}
	return sb.String(), nil
}

func (p *Protocol) evaluateState(state board.GameState) float32 {
	if state.Board.CountEmpty() <= p.endDepth {
		return float32(p.solver.Evaluate(state).Score)
	}
	return p.searcher.Evaluate(state, p.evaluator, p.midDepth).Score
}
