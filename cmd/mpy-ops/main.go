/*
Copyright © 2025 mpy-ops authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package main

import (
	"github.com/mpy-ops/mpy-ops/cmd"
	"github.com/mpy-ops/mpy-ops/internal/config"
	"github.com/mpy-ops/mpy-ops/internal/log"
)

// The process always exits zero. Build and flash steps delegate to
// external tools whose failures are reported in the output, and a
// non-zero exit would only stop editor task chains that the operator
// wants to keep running.
func main() {
	cfg := config.InitConfig()
	log.Init(cfg.Verbose)

	app := cmd.NewApp(log.GetLogger(), config.DefaultProvider())

	if err := cmd.Execute(app); err != nil {
		log.GetLogger().Error("Command failed", "error", err)
	}
}
