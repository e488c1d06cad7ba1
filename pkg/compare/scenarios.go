// Package compare rotates through side-by-side code samples contrasting a
// Python baseline with the equivalent Wesichain program.
package compare

// Stat is a single headline figure shown under a sample.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Sample is one side of a comparison.
type Sample struct {
	Language  string   `json:"language"`
	Framework string   `json:"framework"`
	Code      string   `json:"code"`
	Notes     []string `json:"notes"`
	Stat      Stat     `json:"stat"`
}

// Scenario pairs the baseline program with its Wesichain counterpart.
type Scenario struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Baseline  Sample `json:"baseline"`
	Wesichain Sample `json:"wesichain"`
}

// Tagline sits under the carousel.
const Tagline = "Python baseline → Up to 27x faster with Rust"

func python(code string, stat Stat, issues ...string) Sample {
	return Sample{Language: "Python", Framework: "LangChain", Code: code, Notes: issues, Stat: stat}
}

func rust(code string, stat Stat, benefits ...string) Sample {
	return Sample{Language: "Rust", Framework: "Wesichain", Code: code, Notes: benefits, Stat: stat}
}

// Scenarios is the built-in comparison table.
var Scenarios = []Scenario{
	{
		ID:    "react-agent",
		Title: "ReAct Agent",
		Baseline: python(`from langchain.agents import AgentExecutor
from langchain_openai import ChatOpenAI

llm = ChatOpenAI()
tools = [search, calculator]

agent = AgentExecutor(
    llm=llm,
    tools=tools,
    handle_parsing_errors=True
)

result = agent.invoke({"input": "What is 2+2?"})`,
			Stat{Label: "Cold Start", Value: "3.2s"},
			"GIL-limited", "320 MB memory", "3.2s cold start"),
		Wesichain: rust(`use wesichain_graph::GraphBuilder;
use wesichain_agent::ReActAgent;

let agent = ReActAgent::builder()
    .llm(openai)
    .tools(&[search, calc])
    .build()?;

let graph = GraphBuilder::new()
    .add_node("agent", agent)
    .build();

let result = graph.invoke(state).await?;`,
			Stat{Label: "Cold Start", Value: "120ms"},
			"Native parallel", "15 MB memory", "120ms cold start"),
	},
	{
		ID:    "rag-pipeline",
		Title: "RAG Pipeline",
		Baseline: python(`from langchain.vectorstores import Chroma
from langchain.chains import RetrievalQA

vectorstore = Chroma.from_documents(docs)
qa = RetrievalQA.from_chain_type(
    llm=llm,
    retriever=vectorstore.as_retriever()
)

result = qa.invoke(query)`,
			Stat{Label: "Memory", Value: "~400 MB"},
			"Async not native", "Memory-heavy", "Complex deps"),
		Wesichain: rust(`use wesichain_rag::{Retriever, Pipeline};

let pipeline = Pipeline::builder()
    .embedder(embedder)
    .store(vector_store)
    .llm(llm)
    .build()?;

let stream = pipeline.stream(query).await?;`,
			Stat{Label: "Memory", Value: "~25 MB"},
			"Streaming-native", "Low memory", "Single binary"),
	},
	{
		ID:    "graph-workflow",
		Title: "Graph Workflow",
		Baseline: python(`from langgraph.graph import StateGraph
from langgraph.checkpoint import MemorySaver

builder = StateGraph(State)
builder.add_node("agent", agent_node)
builder.add_edge("start", "agent")

graph = builder.compile(checkpointer=MemorySaver())
result = graph.invoke(state, config)`,
			Stat{Label: "Throughput", Value: "GIL-limited"},
			"Limited checkpointing", "State serialization", "Debugging difficulty"),
		Wesichain: rust(`use wesichain_graph::{GraphBuilder, SqliteCheckpointer};

let graph = GraphBuilder::new()
    .add_node("agent", agent)
    .add_edge(START, "agent")
    .with_checkpointer(SqliteCheckpointer::new(pool))
    .build()?;

// Pause and resume anytime
let state = graph.checkpoint().await?;`,
			Stat{Label: "Throughput", Value: "Scales with cores"},
			"Full checkpointing", "Type-safe state", "Debuggable"),
	},
}
