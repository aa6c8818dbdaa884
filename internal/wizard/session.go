package wizard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theWizardsBaker/sbatch-gen/internal/config"
	"github.com/theWizardsBaker/sbatch-gen/internal/scheduler"
	"github.com/theWizardsBaker/sbatch-gen/internal/utils"
)

// Session asks the generator's questions in order
type Session struct {
	p        *Prompter
	now      time.Time
	defaults config.Defaults
}

// NewSession creates a Session. now fixes the date used for the default job name.
func NewSession(p *Prompter, now time.Time, defaults config.Defaults) *Session {
	return &Session{
		p:        p,
		now:      now,
		defaults: defaults,
	}
}

// AskJobName asks for the job name; blank selects sbatch_<date>
func (s *Session) AskJobName() (string, error) {
	def := scheduler.DefaultJobName(s.now)
	label := fmt.Sprintf("Enter a new sbatch job name (leave blank for %s): ", utils.StyleName(def))
	return s.p.AskUntil(label, func(answer string) (string, error) {
		name := strings.TrimSpace(answer)
		if name == "" {
			return def, nil
		}
		return name, scheduler.ValidateJobName(name)
	})
}

// AskNode lists nodes and asks for a 1-based selection
func (s *Session) AskNode(nodes []scheduler.Node) (scheduler.Node, error) {
	if len(nodes) == 0 {
		return scheduler.Node{}, scheduler.ErrNoNodes
	}

	WriteNodeList(s.p.out, nodes)

	var selected scheduler.Node
	_, err := s.p.AskUntil("\nSelect a node to run on (number): ", func(answer string) (string, error) {
		index, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			return "", scheduler.NewValidationError("selection", answer, "enter a node number")
		}
		selected, err = scheduler.SelectNode(nodes, index)
		return answer, err
	})
	if err != nil {
		return scheduler.Node{}, err
	}
	if !selected.IsUp() {
		utils.PrintWarning("Node %s is %s; jobs may stay pending", selected.Name, selected.Available)
	}
	return selected, nil
}

// AskRequest asks for every resource of a job on node
func (s *Session) AskRequest(node scheduler.Node, jobName string) (scheduler.ResourceRequest, error) {
	req := scheduler.ResourceRequest{JobName: jobName}
	var err error

	if req.CPUs, err = s.askCPUs(node); err != nil {
		return req, err
	}
	if req.Memory, err = s.askMemory(node); err != nil {
		return req, err
	}
	if req.TimeLimit, err = s.askTime(node); err != nil {
		return req, err
	}
	if req.Notify, err = s.p.AskYesNo("\nSend email notifications for this job?", false); err != nil {
		return req, err
	}
	if req.Notify {
		if req.Email, err = s.askEmail(); err != nil {
			return req, err
		}
		if req.NotifyType, err = s.askNotifyType(); err != nil {
			return req, err
		}
	}
	if req.Command, err = s.askCommand(jobName); err != nil {
		return req, err
	}
	if req.OutputFile, err = s.askOutputFile(jobName); err != nil {
		return req, err
	}
	return req, nil
}

func (s *Session) askCPUs(node scheduler.Node) (int, error) {
	s.p.Printf("\nThe %s node has %s total CPUs available.\n",
		utils.StyleName(node.Name), utils.StyleSuccess(strconv.Itoa(node.TotalCPUs)))

	label := "Number of CPUs to use: "
	def := 0
	if scheduler.CPUsValid(s.defaults.CPUs, node) {
		def = s.defaults.CPUs
		label = fmt.Sprintf("Number of CPUs to use (leave blank for %d): ", def)
	}

	var cpus int
	_, err := s.p.AskUntil(label, func(answer string) (string, error) {
		answer = strings.TrimSpace(answer)
		if answer == "" && def > 0 {
			cpus = def
			return answer, nil
		}
		n, err := strconv.Atoi(answer)
		if err != nil {
			return "", scheduler.NewValidationError("CPU count", answer, "enter a whole number")
		}
		cpus = n
		return answer, scheduler.ValidateCPUs(n, node)
	})
	return cpus, err
}

func (s *Session) askMemory(node scheduler.Node) (string, error) {
	s.p.Printf("\n%s MB (%s) total memory is available.\n",
		utils.StyleSuccess(strconv.FormatInt(node.TotalMemoryMB, 10)),
		utils.StyleSuccess(utils.FormatMemoryMB(node.TotalMemoryMB)))
	return s.p.AskUntil("Amount of memory to use (suffix M for megabytes, G for gigabytes): ",
		func(answer string) (string, error) {
			return scheduler.NormalizeMemory(answer, node)
		})
}

func (s *Session) askTime(node scheduler.Node) (string, error) {
	s.p.Printf("\nThe maximum time allotted is %s.\n",
		utils.StyleSuccess(scheduler.DescribeTimeLimit(node.TimeLimit)))
	limit, err := s.p.AskUntil("Estimated job completion time (days-hours:minutes:seconds): ",
		scheduler.NormalizeTimeLimit)
	if err != nil {
		return "", err
	}
	if scheduler.ExceedsTimeLimit(limit, node) {
		utils.PrintWarning("Requested time %s exceeds the %s limit of %s; Slurm may reject or hold the job",
			limit, node.Name, node.TimeLimit)
	}
	return limit, nil
}

func (s *Session) askEmail() (string, error) {
	label := "Email address for notifications: "
	if s.defaults.MailUser != "" {
		label = fmt.Sprintf("Email address for notifications (leave blank for %s): ", s.defaults.MailUser)
	}
	return s.p.AskUntil(label, func(answer string) (string, error) {
		email := strings.TrimSpace(answer)
		if email == "" {
			email = s.defaults.MailUser
		}
		return email, scheduler.ValidateEmail(email)
	})
}

func (s *Session) askNotifyType() (string, error) {
	def, err := scheduler.NormalizeNotifyType(s.defaults.MailType)
	label := fmt.Sprintf("Notify on which events (%s): ", strings.Join(scheduler.NotifyTypes, ", "))
	if err == nil {
		label = fmt.Sprintf("Notify on which events (%s, leave blank for %s): ",
			strings.Join(scheduler.NotifyTypes, ", "), def)
	}
	return s.p.AskUntil(label, func(answer string) (string, error) {
		if strings.TrimSpace(answer) == "" && def != "" {
			return def, nil
		}
		return scheduler.NormalizeNotifyType(answer)
	})
}

func (s *Session) askCommand(jobName string) (string, error) {
	s.p.Println("\nCommands to execute:")
	s.p.Printf("To run more than one command, leave this blank and edit %s after creation.\n",
		utils.StyleName(scheduler.ScriptFileName(jobName)))
	return s.p.Ask("Command: ")
}

func (s *Session) askOutputFile(jobName string) (string, error) {
	def := scheduler.DefaultOutputFile(jobName)
	answer, err := s.p.Ask(fmt.Sprintf("\nEnter an output file name (leave blank for %s): ", def))
	if err != nil {
		return "", err
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		return def, nil
	}
	return answer, nil
}
