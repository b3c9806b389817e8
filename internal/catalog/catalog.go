// Package catalog holds the compiled-in game component catalog.
// Components are static configuration; they are never created or destroyed
// at runtime.
package catalog

// Tier distinguishes core grid components from bonus challenges
type Tier string

const (
	TierCore  Tier = "core"
	TierBonus Tier = "bonus"
)

// Period is the maturity stage a component belongs to
type Period string

const (
	PeriodBasics     Period = "Basics"
	PeriodCombos     Period = "Combos"
	PeriodProduction Period = "Production"
	PeriodFuture     Period = "Future"
)

// Family is the thematic grouping of a component
type Family string

const (
	FamilyActions   Family = "Actions"
	FamilyMemory    Family = "Memory"
	FamilyBlueprint Family = "Blueprint"
	FamilySafety    Family = "Safety"
	FamilyBrains    Family = "Brains"
)

// Component is one entry in the game catalog.
// BonusPoints is only meaningful for TierBonus components.
type Component struct {
	ID          string
	Name        string
	Period      Period
	Family      Family
	Tier        Tier
	Description string
	BonusPoints int
}

const bonusValue = 50

var components = []Component{
	// Basics
	{ID: "prompting", Name: "Prompting", Period: PeriodBasics, Family: FamilyActions, Tier: TierCore,
		Description: "The atomic unit of interaction (instructions)."},
	{ID: "embeddings", Name: "Embeddings", Period: PeriodBasics, Family: FamilyMemory, Tier: TierCore,
		Description: "Converting text to numbers (vectors)."},
	{ID: "chains", Name: "Chains", Period: PeriodBasics, Family: FamilyBlueprint, Tier: TierCore,
		Description: "Simple linear sequences (A to B)."},
	{ID: "rules-regex", Name: "Rules & Regex", Period: PeriodBasics, Family: FamilySafety, Tier: TierCore,
		Description: "Basic deterministic keyword filters."},
	{ID: "llms", Name: "LLMs", Period: PeriodBasics, Family: FamilyBrains, Tier: TierCore,
		Description: "The raw intelligence engine."},

	// Combos
	{ID: "function-calling", Name: "Function Calling", Period: PeriodCombos, Family: FamilyActions, Tier: TierCore,
		Description: "LLMs calling external tools."},
	{ID: "vector-db", Name: "Vector DB", Period: PeriodCombos, Family: FamilyMemory, Tier: TierCore,
		Description: "Storing and searching embeddings."},
	{ID: "rag", Name: "RAG", Period: PeriodCombos, Family: FamilyBlueprint, Tier: TierCore,
		Description: "Retrieval Augmented Generation."},
	{ID: "guardrails", Name: "Guardrails", Period: PeriodCombos, Family: FamilySafety, Tier: TierCore,
		Description: "Validators to ensure output quality."},
	{ID: "multimodal", Name: "Multimodal", Period: PeriodCombos, Family: FamilyBrains, Tier: TierCore,
		Description: "Models that see, hear, and speak."},
	{ID: "evaluator", Name: "Evaluator", Period: PeriodCombos, Family: FamilySafety, Tier: TierCore,
		Description: "Automated quality checks for model outputs."},

	// Production
	{ID: "agents", Name: "Agents", Period: PeriodProduction, Family: FamilyActions, Tier: TierCore,
		Description: "Think, Act, Observe loops."},
	{ID: "fine-tuning", Name: "Fine-tuning", Period: PeriodProduction, Family: FamilyMemory, Tier: TierCore,
		Description: "Baking knowledge into model weights."},
	{ID: "frameworks", Name: "Frameworks", Period: PeriodProduction, Family: FamilyBlueprint, Tier: TierCore,
		Description: "Tools like LangChain to tie it together."},
	{ID: "red-teaming", Name: "Red Teaming", Period: PeriodProduction, Family: FamilySafety, Tier: TierCore,
		Description: "Adversarial testing for vulnerabilities."},
	{ID: "small-models", Name: "Small Models", Period: PeriodProduction, Family: FamilyBrains, Tier: TierCore,
		Description: "Distilled, specialized, and efficient models."},

	// Future
	{ID: "multi-agent", Name: "Multi-Agent", Period: PeriodFuture, Family: FamilyActions, Tier: TierCore,
		Description: "Multiple agents collaborating or debating."},
	{ID: "synthetic-data", Name: "Synthetic Data", Period: PeriodFuture, Family: FamilyMemory, Tier: TierCore,
		Description: "Generating training data using AI."},
	{ID: "flow-engineering", Name: "Flow Engineering", Period: PeriodFuture, Family: FamilyBlueprint, Tier: TierCore,
		Description: "Programmatic, self-optimizing prompt flows."},
	{ID: "interpretability", Name: "Interpretability", Period: PeriodFuture, Family: FamilySafety, Tier: TierCore,
		Description: "Mapping specific neurons to concepts."},

	// Bonus challenges
	{ID: "ralph-wiggum-loops", Name: "Ralph Wiggum Loops", Period: PeriodFuture, Family: FamilyActions, Tier: TierBonus,
		Description: "Persistent agent loops that run autonomously until task completion.", BonusPoints: bonusValue},
	{ID: "agent-skills", Name: "Agent Skills", Period: PeriodProduction, Family: FamilyBlueprint, Tier: TierBonus,
		Description: "Portable packages that extend agent capabilities with reusable expertise.", BonusPoints: bonusValue},
	{ID: "orchestration", Name: "Orchestration", Period: PeriodFuture, Family: FamilyBlueprint, Tier: TierBonus,
		Description: "Tools that manage fleets of autonomous agents working in parallel.", BonusPoints: bonusValue},
	{ID: "sub-agents", Name: "Sub-Agents", Period: PeriodFuture, Family: FamilyActions, Tier: TierBonus,
		Description: "Specialized AI instances with custom prompts, tools, and permissions.", BonusPoints: bonusValue},
	{ID: "context-window-mgmt", Name: "Context Window Management", Period: PeriodProduction, Family: FamilyMemory, Tier: TierBonus,
		Description: "Strategies for managing agent memory limits.", BonusPoints: bonusValue},
	{ID: "agent-to-agent-comm", Name: "Agent-to-Agent Communication", Period: PeriodFuture, Family: FamilyActions, Tier: TierBonus,
		Description: "Protocols for agents to pass messages and context to each other.", BonusPoints: bonusValue},
	{ID: "persistent-memory", Name: "Persistent Memory (Beads)", Period: PeriodFuture, Family: FamilyMemory, Tier: TierBonus,
		Description: "Git-backed memory systems that persist across sessions.", BonusPoints: bonusValue},
	{ID: "parallel-execution", Name: "Parallel Execution", Period: PeriodFuture, Family: FamilyBlueprint, Tier: TierBonus,
		Description: "Running multiple isolated agent instances concurrently.", BonusPoints: bonusValue},
	{ID: "thinking-models", Name: "Thinking Models", Period: PeriodFuture, Family: FamilyBrains, Tier: TierBonus,
		Description: "Models that reason (Chain of Thought) first.", BonusPoints: bonusValue},
}

var byID = func() map[string]Component {
	m := make(map[string]Component, len(components))
	for _, c := range components {
		m[c.ID] = c
	}
	return m
}()

// Get looks up a component by id
func Get(id string) (Component, bool) {
	c, ok := byID[id]
	return c, ok
}

// All returns every component in catalog order
func All() []Component {
	out := make([]Component, len(components))
	copy(out, components)
	return out
}

// CoreIDs returns the ids of all core components in catalog order
func CoreIDs() []string {
	return idsForTier(TierCore)
}

// BonusIDs returns the ids of all bonus components in catalog order
func BonusIDs() []string {
	return idsForTier(TierBonus)
}

func idsForTier(t Tier) []string {
	var ids []string
	for _, c := range components {
		if c.Tier == t {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
