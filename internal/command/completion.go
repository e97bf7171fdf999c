// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/lructl/internal/meta"
)

const bashCompletionScript = `# bash completion for lructl
_lructl()
{
    local cur prev cmd
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "completion demo replay ui --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--capacity -n --color -c --filter -f --output -o --titles -t --tldr"

    case "$cmd" in
        demo)
            local opts="$common"
            ;;
        replay)
            local opts="$common --quiet -q --summary --trace"
            ;;
        ui)
            local opts="$common --inline"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml raw" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* || "$cmd" != "replay" ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # replay takes an optional script file.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _lructl lructl
`

const zshCompletionScript = `#compdef lructl

_lructl() {
  local -a cmds
  cmds=(
    'completion:generate shell completion script'
    'demo:walk through the LRU eviction scenarios'
    'replay:apply a script of get/put operations'
    'ui:interactive cache manager'
  )

  local -a common
  common=(
  '(-n --capacity)'{-n,--capacity}'[maximum entries]:capacity'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filter printed entries]:filter'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml raw)'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'lructl commands' cmds
    return
  fi

  case $words[2] in
    demo)
      _arguments -C $common
      ;;
    replay)
      _arguments -C \
        $common \
        '(-q --quiet)'{-q,--quiet}'[only print final contents]' \
        '--summary[print totals]' \
        '--trace[print diffs after each op]' \
        '::script:_files'
      ;;
    ui)
      _arguments -C $common '--inline[do not use the alternate screen]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _lructl lructl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(cmd.Root().ErrWriter, "usage: lructl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "lructl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
