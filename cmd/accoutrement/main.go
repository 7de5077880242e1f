// accoutrement - palette colour resolver and contrast checker
//
// accoutrement resolves named palette colours through references and
// adjustment chains, and checks WCAG contrast between them.
package main

import (
	"github.com/supermueller/accoutrement-color/internal/cli"
)

func main() {
	cli.Execute()
}
