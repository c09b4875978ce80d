package main

import "github.com/hrcore/employee-management/cmd"

func main() {
	cmd.Execute()
}
