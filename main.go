// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/manifestgen/manifestgen/cmd/manifestgen"

func main() {
	cmd.Execute()
}
