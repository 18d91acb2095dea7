// The neupim command drives and inspects the accelerator instrumentation
// components.
package main

func main() {
	Execute()
}
