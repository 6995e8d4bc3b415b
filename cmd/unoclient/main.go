// Interactive terminal client for the UNO server. Prints every server
// message and prompts for an action when it is this player's turn.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"unoserver/internal/netx"
	"unoserver/internal/protocol"
)

func main() {
	host := flag.String("host", "127.0.0.1", "server host")
	port := flag.Int("port", 10000, "server port")
	flag.Parse()

	addr := net.JoinHostPort(*host, strconv.Itoa(*port))
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect:", err)
		os.Exit(1)
	}
	defer conn.Close()
	fmt.Println("Connected to server", addr)

	c := &client{conn: conn, stdin: bufio.NewReader(os.Stdin), myIndex: -1}
	c.recvLoop()
}

type client struct {
	conn    net.Conn
	stdin   *bufio.Reader
	myIndex int
}

func (c *client) recvLoop() {
	dec := netx.NewDecoder(c.conn)
	for {
		var m protocol.ServerMessage
		err := dec.Next(&m)
		if errors.Is(err, netx.ErrBadFrame) {
			fmt.Println("Failed to parse:", err)
			continue
		}
		if err != nil {
			fmt.Println("Server closed connection.")
			return
		}
		c.handle(m)
	}
}

func (c *client) handle(m protocol.ServerMessage) {
	switch m.Type {
	case protocol.MsgWelcome:
		if m.PlayerIndex != nil {
			c.myIndex = *m.PlayerIndex
			fmt.Println("Welcome! Your player index:", c.myIndex)
		}
	case protocol.MsgState:
		if m.State != nil {
			printState(m.State)
		}
	case protocol.MsgPrompt:
		if m.PlayerIndex == nil {
			return
		}
		fmt.Printf("It's player %d's turn.\n", *m.PlayerIndex)
		if *m.PlayerIndex == c.myIndex {
			c.promptAction()
		}
	case protocol.MsgInfo:
		fmt.Println("[info]", m.Text)
	default:
		fmt.Println("Unknown message type:", m.Type)
	}
}

func printState(s *protocol.GameSnapshot) {
	fmt.Println("=== Game State ===")
	fmt.Println("Current card:", s.CurrentCard)
	if s.YourHand != nil {
		fmt.Println("Your hand:")
		for i, card := range s.YourHand {
			fmt.Printf("  %d: %s\n", i, card)
		}
	}
	fmt.Println("Players:")
	for _, p := range s.Players {
		fmt.Println(" -", p.ID, "cards:", p.HandCount)
	}
	fmt.Println("==================")
}

func (c *client) promptAction() {
	choice := strings.ToLower(c.readLine("Your action ([p]lay [d]raw): "))
	if !strings.HasPrefix(choice, "p") {
		c.send(protocol.ClientMessage{Type: protocol.MsgAction, Action: "draw"})
		return
	}

	idx, err := strconv.Atoi(c.readLine("Card index to play (0-based): "))
	if err != nil {
		fmt.Println("Not a number, drawing instead.")
		c.send(protocol.ClientMessage{Type: protocol.MsgAction, Action: "draw"})
		return
	}
	msg := protocol.ClientMessage{Type: protocol.MsgAction, Action: "play", CardIndex: &idx}
	if color := c.readLine("If wild, new color (red/yellow/green/blue) or blank: "); color != "" {
		msg.NewColor = &color
	}
	fmt.Printf("Sending play request for index %d\n", idx)
	c.send(msg)
}

func (c *client) readLine(prompt string) string {
	fmt.Print(prompt)
	line, err := c.stdin.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (c *client) send(msg protocol.ClientMessage) {
	frame, err := netx.Encode(msg)
	if err != nil {
		fmt.Println("encode:", err)
		return
	}
	if _, err := c.conn.Write(frame); err != nil {
		fmt.Println("send:", err)
	}
}
