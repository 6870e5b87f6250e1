package commands

import (
	"errors"
	"net"
	"regexp"
	"strings"
)

const (
	// do nothing operation
	NOOP = iota
	// Submit a transaction: send <sender> <recipient> <amount>.
	SEND
	// Ask the full node to mine a block, optionally paying the given recipient.
	REMOTE_MINE
	// Connect a full node with ip address and port
	CONNECT
	// Print the chain of the full node.
	GET_CHAIN
)

type ClientCommand struct {
	Op   Operation
	Args []string
}

func (c ClientCommand) IsValid() bool {
	switch c.Op {
	case SEND:
		return len(c.Args) == 3
	case REMOTE_MINE:
		return len(c.Args) <= 1
	case GET_CHAIN:
		return len(c.Args) == 0
	case CONNECT:
		if len(c.Args) != 2 {
			return false
		}
		ipAddr := c.Args[0]
		port := c.Args[1]
		ip := net.ParseIP(ipAddr)

		portRegex := regexp.MustCompile(PORT_REGEX)
		return (ip != nil || ipAddr == "localhost") && portRegex.MatchString(port)
	default:
		return false
	}
}

func CreateClientCommand(s string) (ClientCommand, error) {
	// split command by space.
	ss := strings.Fields(s)
	if len(ss) == 0 {
		return ClientCommand{}, errors.New("command is empty")
	}
	cmd := ClientCommand{}
	switch ss[0] {
	case "send":
		cmd.Op = SEND
	case "mine":
		cmd.Op = REMOTE_MINE
	case "connect":
		cmd.Op = CONNECT
	case "chain":
		cmd.Op = GET_CHAIN
	default:
		cmd.Op = NOOP
	}
	cmd.Args = ss[1:]
	if !cmd.IsValid() {
		return ClientCommand{}, errors.New("invalid command")
	}
	return cmd, nil
}
