// Command currforge is the CurrForge CLI client.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/currforge/currforge/internal/version"
	"github.com/currforge/currforge/update"
)

const defaultServer = "http://localhost:3000"

func main() {
	serverURL := flag.String("server", defaultServer, "currforge server URL")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cli := &Client{
		BaseURL:    strings.TrimRight(*serverURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}

	cmd := args[0]
	rest := args[1:]

	var err error
	switch cmd {
	case "version":
		err = cmdVersion(rest)
	case "health":
		err = cli.cmdHealth(rest)
	case "generate":
		err = cli.cmdGenerate(rest)
	case "status":
		err = cli.cmdStatus(rest)
	case "watch":
		err = cli.cmdWatch(rest)
	case "books":
		err = cli.cmdBooks(rest)
	case "agents":
		err = cli.cmdAgents(rest)
	case "models":
		err = cli.cmdModels(rest)
	case "update":
		err = cmdUpdate(rest)
	case "serve":
		fmt.Fprintln(os.Stderr, "use currforged to run the server")
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `currforge — CurrForge CLI

Usage:
  currforge [flags] <command> [args]

Flags:
  --server  <url>    server URL (default: http://localhost:3000)

Commands:
  version              print version
  health               show server health
  generate -f <file>   submit a generation request from a JSON file
  status <id>          show the status of a request
  watch [id]           follow a request until done, or stream all events
  books                list the book catalog
  agents               list the curriculum agents
  models <provider>    list models for a provider
  update               self-update to the latest release
`)
}

// --- version ---

func cmdVersion(_ []string) error {
	fmt.Printf("currforge %s (commit %s, built %s)\n",
		version.Version, version.Commit, version.BuildDate)
	return nil
}

// --- update ---

func cmdUpdate(_ []string) error {
	u := update.New(version.Version)
	rel, err := u.CheckForUpdate()
	if err != nil {
		return fmt.Errorf("check for update: %w", err)
	}
	if rel == nil {
		fmt.Println("already up to date")
		return nil
	}
	fmt.Printf("updating to %s...\n", rel.Version)
	if err := u.ApplyUpdate(rel); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}
	fmt.Printf("updated to %s\n", rel.Version)
	return nil
}

// Client holds HTTP client state for CLI commands.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// get performs a GET and decodes JSON into v.
func (c *Client) get(path string, v any) error {
	resp, err := c.HTTPClient.Get(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// post performs a POST and decodes the JSON response into v.
func (c *Client) post(path string, body io.Reader, v any) error {
	resp, err := c.HTTPClient.Post(c.BaseURL+path, "application/json", body)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode >= 400 {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	if v == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// --- health ---

func (c *Client) cmdHealth(_ []string) error {
	var health struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
		Provider  string `json:"provider"`
	}
	if err := c.get("/api/health", &health); err != nil {
		return err
	}
	fmt.Printf("status:   %s\n", health.Status)
	fmt.Printf("provider: %s\n", health.Provider)
	fmt.Printf("time:     %s\n", health.Timestamp)
	return nil
}

// --- generate ---

func (c *Client) cmdGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	file := fs.String("f", "", "JSON file with the generation request")
	fs.Parse(args) //nolint:errcheck
	if *file == "" {
		return fmt.Errorf("usage: currforge generate -f <request.json>")
	}
	payload, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("read request file: %w", err)
	}

	var accepted struct {
		RequestID     string `json:"requestId"`
		Message       string `json:"message"`
		EstimatedTime string `json:"estimatedTime"`
	}
	if err := c.post("/api/generate", strings.NewReader(string(payload)), &accepted); err != nil {
		return err
	}
	fmt.Println(accepted.Message)
	fmt.Printf("request id:     %s\n", accepted.RequestID)
	fmt.Printf("estimated time: %s\n", accepted.EstimatedTime)
	fmt.Printf("check status:   currforge status %s\n", accepted.RequestID)
	return nil
}

// --- status ---

func (c *Client) cmdStatus(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: currforge status <request-id>")
	}
	var rec struct {
		ID        string          `json:"id"`
		State     string          `json:"state"`
		Progress  string          `json:"progress"`
		Error     string          `json:"error"`
		StartedAt string          `json:"startedAt"`
		Result    json.RawMessage `json:"result"`
	}
	if err := c.get("/api/status/"+args[0], &rec); err != nil {
		return err
	}
	fmt.Printf("request: %s\n", rec.ID)
	fmt.Printf("state:   %s\n", rec.State)
	if rec.Progress != "" {
		fmt.Printf("progress: %s\n", rec.Progress)
	}
	if rec.Error != "" {
		fmt.Printf("error:   %s\n", rec.Error)
	}
	if len(rec.Result) > 0 {
		printResult(rec.Result)
	}
	return nil
}

func printResult(raw json.RawMessage) {
	var result struct {
		Results map[string]struct {
			Title    string `json:"title"`
			Filename string `json:"filename"`
			Pages    int    `json:"pages"`
			Error    string `json:"error"`
		} `json:"results"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return
	}
	fmt.Println("documents:")
	for _, doc := range result.Results {
		if doc.Error != "" {
			fmt.Printf("  %-35s FAILED: %s\n", doc.Title, doc.Error)
			continue
		}
		fmt.Printf("  %-35s %s (%d pages)\n", doc.Title, doc.Filename, doc.Pages)
	}
}

// --- watch ---

// cmdWatch follows generation progress: with a request id it polls status
// until the run settles, otherwise it tails the server's SSE stream.
func (c *Client) cmdWatch(args []string) error {
	if len(args) == 1 {
		return c.watchRequest(args[0])
	}
	resp, err := c.HTTPClient.Get(c.BaseURL + "/events")
	if err != nil {
		return fmt.Errorf("connect to event stream: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	fmt.Println("watching generation events (Ctrl+C to stop)...")
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var msg struct {
			Type      string `json:"type"`
			RequestID string `json:"requestId"`
			TaskType  string `json:"taskType"`
			Detail    string `json:"detail"`
		}
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &msg); err != nil {
			continue
		}
		if msg.TaskType != "" {
			fmt.Printf("%s  %-15s %-18s %s\n", time.Now().Format("15:04:05"), msg.Type, msg.TaskType, msg.RequestID)
		} else {
			fmt.Printf("%s  %-15s %s\n", time.Now().Format("15:04:05"), msg.Type, msg.RequestID)
		}
	}
	return scanner.Err()
}

func (c *Client) watchRequest(id string) error {
	var last string
	for {
		var rec struct {
			State    string `json:"state"`
			Progress string `json:"progress"`
			Error    string `json:"error"`
		}
		if err := c.get("/api/status/"+id, &rec); err != nil {
			return err
		}
		if rec.Progress != last && rec.Progress != "" {
			fmt.Printf("%s  %s\n", time.Now().Format("15:04:05"), rec.Progress)
			last = rec.Progress
		}
		switch rec.State {
		case "completed":
			fmt.Println("completed")
			return c.cmdStatus([]string{id})
		case "failed":
			return fmt.Errorf("generation failed: %s", rec.Error)
		}
		time.Sleep(2 * time.Second)
	}
}

// --- books ---

func (c *Client) cmdBooks(_ []string) error {
	var resp struct {
		Books []struct {
			Slug   string `json:"slug"`
			Title  string `json:"title"`
			Author string `json:"author"`
			Pages  int    `json:"pages"`
		} `json:"books"`
	}
	if err := c.get("/api/books", &resp); err != nil {
		return err
	}
	for _, b := range resp.Books {
		fmt.Printf("%-24s %s, %s (%d pages)\n", b.Slug, b.Title, b.Author, b.Pages)
	}
	return nil
}

// --- agents ---

func (c *Client) cmdAgents(_ []string) error {
	var resp struct {
		Agents []struct {
			Type  string `json:"type"`
			Name  string `json:"name"`
			Title string `json:"title"`
		} `json:"agents"`
	}
	if err := c.get("/api/agents", &resp); err != nil {
		return err
	}
	for i, a := range resp.Agents {
		fmt.Printf("%2d. %-18s %-32s %s\n", i+1, a.Type, a.Name, a.Title)
	}
	return nil
}

// --- models ---

func (c *Client) cmdModels(args []string) error {
	providerType := "anthropic"
	if len(args) > 0 {
		providerType = args[0]
	}
	var resp struct {
		Models []struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"models"`
	}
	if err := c.get("/api/models/"+providerType, &resp); err != nil {
		return err
	}
	for _, m := range resp.Models {
		fmt.Printf("%-28s %-20s %s\n", m.ID, m.Name, m.Description)
	}
	return nil
}
