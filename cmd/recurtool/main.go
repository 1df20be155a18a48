// recurtool inspects and converts calendar recurrence rules from the
// command line.
package main

func main() {
	Execute()
}
