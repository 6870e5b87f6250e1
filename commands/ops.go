package commands

import (
	"errors"
	"strconv"
	"strings"
)

type Operation int

const PORT_REGEX = "^[0-9]{2,5}$"

const (
	DEFAULT = iota
	// Start mining, infinite loop until explicit cancel.
	START
	// Abandon the current proof search and start a new one.
	RESTART
	// Stop mining completely.
	STOP
	// Mine exactly one block.
	MINE
	// Queue a transaction: tx <sender> <recipient> <amount>.
	TX
	// Print the whole chain.
	CHAIN
	// Print the pending transactions.
	PENDING
	// Show the last blocks of the blockchain.
	SHOW
)

// A command contains a operation and many arguments.
type Command struct {
	Op   Operation
	Args []string
}

func (c Command) IsValid() bool {
	switch c.Op {
	case START, RESTART, STOP, MINE, CHAIN, PENDING:
		return len(c.Args) == 0
	case TX:
		return len(c.Args) == 3
	case SHOW:
		if len(c.Args) != 1 {
			return false
		}
		// depth must be a number.
		if d, err := strconv.Atoi(c.Args[0]); err != nil || d < 0 {
			return false
		}
		return true
	default:
		return false
	}
}

// From string, create
func CreateCommand(s string) (Command, error) {
	// split command by space.
	ss := strings.Fields(s)
	if len(ss) == 0 {
		return Command{}, errors.New("command is empty")
	}
	cmd := Command{}
	switch ss[0] {
	case "start":
		cmd.Op = START
	case "restart":
		cmd.Op = RESTART
	case "stop":
		cmd.Op = STOP
	case "mine":
		cmd.Op = MINE
	case "tx":
		cmd.Op = TX
	case "chain":
		cmd.Op = CHAIN
	case "pending":
		cmd.Op = PENDING
	case "show":
		cmd.Op = SHOW
	}
	cmd.Args = ss[1:]
	if !cmd.IsValid() {
		return Command{}, errors.New("invalid command")
	}
	return cmd, nil
}

// Create a brand new command with default operation.
func NewDefaultCommand() Command {
	return Command{
		Op: DEFAULT,
	}
}

func (c Command) IsDefault() bool {
	return c.Op == DEFAULT
}
