// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/alictl/alictl/internal/meta"
)

const bashCompletionScript = `# bash completion for alictl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_alictl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "call rq zq iq lq nq completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --tldr"
  local conn="--region -r --access-key -k --secret-key"

    case "$cmd" in
    call)
      local opts="$conn --color -c --query -q"
            if [[ ${COMP_CWORD} -eq 2 ]]; then
                COMPREPLY=( $(compgen -W "ecs slb dns" -- "$cur") )
                return 0
            fi
            ;;
        rq)
      local opts="$common $conn --schema"
            ;;
        zq)
      local opts="$common $conn --schema"
            ;;
        iq)
      local opts="$common $conn --schema --id --zone -z"
            ;;
        lq)
      local opts="$common $conn --schema --id --server-id"
            ;;
        nq)
      local opts="$common $conn --schema --domain -d"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

  COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
  return 0
}

complete -F _alictl alictl
`

const zshCompletionScript = `#compdef alictl

_alictl() {
  local -a cmds
  cmds=(
    'call:sign and send one raw API request'
    'rq:region query'
    'zq:zone query'
    'iq:instance query'
    'lq:load balancer query'
    'nq:domain record query'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  local -a conn
  conn=(
  '(-r --region)'{-r,--region}'[region id]:region'
  '(-k --access-key)'{-k,--access-key}'[access key id]:key'
  '--secret-key[secret access key]:key'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'alictl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    call)
      _arguments -C \
        $conn \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-q --query)'{-q,--query}'[response sub-document path]:path' \
        '2: :((ecs slb dns))'
      ;;
    rq)
      _arguments -C $common $conn '--schema[dump schema]'
      ;;
    zq)
      _arguments -C $common $conn '--schema[dump schema]'
      ;;
    iq)
      _arguments -C \
        $common $conn \
        '--schema[dump schema]' \
        '--id[instance id]:id' \
        '(-z --zone)'{-z,--zone}'[availability zone]:zone'
      ;;
    lq)
      _arguments -C \
        $common $conn \
        '--schema[dump schema]' \
        '--id[load balancer id]:id' \
        '--server-id[instance id]:id'
      ;;
    nq)
      _arguments -C \
        $common $conn \
        '--schema[dump schema]' \
        '(-d --domain)'{-d,--domain}'[domain name]:domain'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _alictl alictl alictl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(os.Stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(os.Stdout, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: alictl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "alictl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
