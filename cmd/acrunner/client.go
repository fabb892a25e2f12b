package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	httpclient "acrunner/internal/cli/http"
	"acrunner/internal/config"
	"acrunner/internal/problem/model"
)

const clientTimeout = 10 * time.Second

func newClient(settings config.Settings) *httpclient.Client {
	return httpclient.New("http://"+net.JoinHostPort(listenHost, strconv.Itoa(settings.Port)), clientTimeout)
}

func sendCommand(settings config.Settings, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: acrunner send <file.json>")
		return 2
	}
	payload, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "read payload failed: %v\n", err)
		return 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), clientTimeout)
	defer cancel()
	env, err := newClient(settings).SendProblem(ctx, payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "send failed: %v\n", err)
		return 1
	}
	return printProblem(env.Data)
}

func statusCommand(settings config.Settings) int {
	ctx, cancel := context.WithTimeout(context.Background(), clientTimeout)
	defer cancel()
	env, err := newClient(settings).CurrentProblem(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "status failed: %v\n", err)
		return 1
	}
	return printProblem(env.Data)
}

func printProblem(data json.RawMessage) int {
	var problem model.ProblemRecord
	if err := json.Unmarshal(data, &problem); err != nil {
		fmt.Fprintf(os.Stderr, "decode problem failed: %v\n", err)
		return 1
	}
	fmt.Printf("%s (%s/%s) %d ms, %d cases\n",
		problem.Name, problem.ContestID, problem.TaskID, problem.TimeLimit, len(problem.Cases))
	return 0
}
