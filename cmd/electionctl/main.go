// Command electionctl drives the election authority HTTP API.
package main

import "os"

func main() {
	os.Exit(execute())
}
