// Command kvs-client is the command-line front end for the store's TCP
// server: one-shot get/set/rm subcommands, plus an interactive REPL mode.
package main

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/ignitedb/kvs/internal/protocol"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", "127.0.0.1:4000", "server address")
	repl := flag.Bool("repl", false, "start an interactive REPL instead of running a single subcommand")
	flag.Parse()

	if *repl {
		return runRepl(*addr)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: kvs-client [--addr host:port] <get|set|rm> ...")
		return 1
	}

	req, err := parseCommand(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	resp, err := send(*addr, req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return printResponse(args[0], resp)
}

func parseCommand(args []string) (protocol.Request, error) {
	switch args[0] {
	case "get":
		if len(args) != 2 {
			return protocol.Request{}, fmt.Errorf("usage: get <key>")
		}
		return protocol.NewGetRequest(args[1]), nil
	case "set":
		if len(args) != 3 {
			return protocol.Request{}, fmt.Errorf("usage: set <key> <value>")
		}
		return protocol.NewSetRequest(args[1], args[2]), nil
	case "rm":
		if len(args) != 2 {
			return protocol.Request{}, fmt.Errorf("usage: rm <key>")
		}
		return protocol.NewRmRequest(args[1]), nil
	default:
		return protocol.Request{}, fmt.Errorf("unknown subcommand %q", args[0])
	}
}

func send(addr string, req protocol.Request) (protocol.Response, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return protocol.Response{}, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()

	if err := protocol.WriteRequest(conn, req); err != nil {
		return protocol.Response{}, err
	}

	return protocol.ReadResponse(conn)
}

// printResponse applies the exit code policy: 0 on success, 1 on
// remove-of-missing and on server-reported errors for set/rm; a get of a
// missing key prints the error message to stdout and exits 0.
func printResponse(command string, resp protocol.Response) int {
	if resp.IsErr() {
		if command == "get" {
			fmt.Println(resp.Err())
			return 0
		}
		fmt.Fprintln(os.Stderr, resp.Err())
		return 1
	}

	if command == "get" {
		value, ok := resp.Value()
		if !ok {
			fmt.Println("Key not found")
			return 0
		}
		fmt.Println(value)
	}

	return 0
}

func runRepl(addr string) int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Printf("sending commands to %s, type \"get|set|rm ...\", ctrl-d to quit\n", addr)

	for {
		input, err := line.Prompt("kvs> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err.Error() == "EOF" {
				return 0
			}
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		args := strings.Fields(input)
		req, err := parseCommand(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		resp, err := send(addr, req)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		printResponse(args[0], resp)
	}
}
