package coach

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const promptTemplate = `You are an elite fitness coach for BaseLayer.
Keep answers short (under 50 words), motivating, and factual.
User asks: %q`

const greetingReply = "Hey! I'm your BaseLayer Coach. Ask me about your diet, workout, or form!"

const offlineReply = "I'm currently offline. Try again in a bit, or ask about protein, creatine, soreness or your diet."

// fallbackReplies is scanned in order; the first keyword contained in the
// message wins.
var fallbackReplies = []struct {
	keyword string
	reply   string
}{
	{"protein", "Protein is crucial! Aim for 1.6g to 2.2g per kg of body weight."},
	{"creatine", "Creatine monohydrate (5g/day) helps with strength and recovery."},
	{"pain", "Sharp pain? STOP. Dull soreness? That's normal (DOMS). Keep moving lightly."},
	{"sore", "Soreness is normal! Sleep well and eat protein to recover."},
	{"diet", "Consistency is key! Stick to whole foods and hit your protein goal."},
	{"kcal", "Crossed your limit? Don't worry, just get back on track tomorrow. One meal won't ruin progress."},
}

// Coach answers chat messages, preferring the Replier when one is set.
type Coach struct {
	replier Replier
}

// New builds a Coach. replier may be nil, in which case only canned answers are used.
func New(replier Replier) *Coach {
	return &Coach{replier: replier}
}

// Reply never fails: replier errors are logged and answered offline.
func (c *Coach) Reply(ctx context.Context, message string) string {
	if c != nil && c.replier != nil {
		reply, err := c.replier.GenerateReply(ctx, fmt.Sprintf(promptTemplate, message))
		if err == nil && strings.TrimSpace(reply) != "" {
			return strings.TrimSpace(reply)
		}
		if err != nil {
			log.Printf("[coach] replier error: %v", err)
		}
	}
	return FallbackReply(message)
}

// FallbackReply answers from the canned keyword table.
func FallbackReply(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))
	switch lower {
	case "hi", "hello", "hey":
		return greetingReply
	}
	for _, f := range fallbackReplies {
		if strings.Contains(lower, f.keyword) {
			return f.reply
		}
	}
	return offlineReply
}
