package main

import (
	"bufio"
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/shelld/internal/wire"
)

var clientCmd = &cobra.Command{
	Use:   "client [address]",
	Short: "Connect to a running shelld server for manual smoke-testing",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClient,
}

func runClient(cmd *cobra.Command, args []string) error {
	addr := "127.0.0.1:8080"
	if len(args) == 1 {
		addr = args[0]
	}
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("client: dial %s: %w", addr, err)
	}
	defer conn.Close()

	fmt.Printf("connected to %s, type 'exit' to quit\n", addr)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if err := wire.WriteFrame(conn, []byte(line)); err != nil {
			return fmt.Errorf("client: send: %w", err)
		}
		if line == "exit" {
			return nil
		}
		for {
			frame, err := wire.ReadFrame(conn)
			if err != nil {
				return fmt.Errorf("client: receive: %w", err)
			}
			if string(frame) == wire.EOF {
				break
			}
			fmt.Print(string(frame))
		}
	}
	return scanner.Err()
}
