package fallback

import "github.com/2beens/devfolio/internal/blog"

// bundled metadata, served when the remote store is down or not configured
var metaTable = map[string]blog.PostMeta{
	"scalable-react-nextjs-14": {
		Slug:     "scalable-react-nextjs-14",
		Title:    "Building Scalable React Applications with Next.js 14",
		Subtitle: "Leverage App Router, Server Components, and Performance Optimization Techniques",
		Date:     "2024-01-15",
		ReadTime: "12-15 min read",
		Tags:     []string{"Next.js", "React", "Performance", "Architecture"},
		Excerpt:  "Discover how to build scalable React applications using Next.js 14's latest features including App Router, Server Components, and advanced caching strategies.",
		Featured: true,
	},
	"microservices-nodejs-docker": {
		Slug:     "microservices-nodejs-docker",
		Title:    "Microservices Architecture with Node.js and Docker",
		Subtitle: "A comprehensive guide to building and deploying microservices using Node.js, Docker, and Kubernetes",
		Date:     "2024-01-15",
		ReadTime: "12-15 min read",
		Tags:     []string{"Node.js", "Docker", "Kubernetes", "Microservices"},
		Excerpt:  "Learn how to design, containerize, and orchestrate microservices using Node.js, Docker, and Kubernetes for scalable backend systems.",
		Featured: true,
	},
	"advanced-typescript-patterns-better-code": {
		Slug:     "advanced-typescript-patterns-better-code",
		Title:    "Advanced TypeScript Patterns for Better Code",
		Subtitle: "Explore advanced TypeScript patterns and techniques that will make your code more type-safe, maintainable, and self-documenting.",
		Date:     "2024-01-15",
		ReadTime: "12-14 min read",
		Tags:     []string{"TypeScript", "Patterns", "Architecture"},
		Excerpt:  "Discover advanced TypeScript patterns that will make your code more type-safe, maintainable, and self-documenting.",
	},
	"state-management-react-redux-zustand-context": {
		Slug:     "state-management-react-redux-zustand-context",
		Title:    "State Management in React: Redux vs Zustand vs Context",
		Subtitle: "Compare different state management solutions for React applications. When to use Redux, Zustand, or React Context, with practical examples and performance considerations.",
		Date:     "2024-01-15",
		ReadTime: "10-12 min read",
		Tags:     []string{"React", "State Management", "Performance"},
		Excerpt:  "Compare different state management solutions for React applications. When to use Redux, Zustand, or React Context, with practical examples and performance considerations.",
	},
	"implementing-cicd-pipelines-github-actions": {
		Slug:     "implementing-cicd-pipelines-github-actions",
		Title:    "Implementing CI/CD Pipelines with GitHub Actions",
		Subtitle: "Step-by-step guide to setting up robust CI/CD pipelines using GitHub Actions. Automated testing, deployment, and monitoring for modern web applications.",
		Date:     "2024-01-15",
		ReadTime: "5 min read",
		Tags:     []string{"CI/CD", "GitHub Actions", "DevOps"},
		Excerpt:  "Step-by-step guide to setting up robust CI/CD pipelines using GitHub Actions. Automated testing, deployment, and monitoring for modern web applications.",
	},
	"database-optimization-high-traffic-applications": {
		Slug:     "database-optimization-high-traffic-applications",
		Title:    "Database Optimization for High-Traffic Applications",
		Subtitle: "Learn database optimization techniques for handling high-traffic applications. Covering indexing strategies, query optimization, and database scaling patterns.",
		Date:     "2024-01-15",
		ReadTime: "5 min read",
		Tags:     []string{"Database", "Performance", "Optimization"},
		Excerpt:  "Learn database optimization techniques for handling high-traffic applications. Covering indexing strategies, query optimization, and database scaling patterns.",
	},
	"ai-agents-developer-productivity": {
		Slug:     "ai-agents-developer-productivity",
		Title:    "How AI Agents can help to improve productivity of Developer",
		Subtitle: "Discover how AI agents are revolutionizing software development by automating repetitive tasks, enhancing code quality, and accelerating development workflows.",
		Date:     "2024-01-20",
		ReadTime: "10-12 min read",
		Tags:     []string{"AI", "Productivity", "Development", "Automation"},
		Excerpt:  "Discover how AI agents are revolutionizing software development by automating repetitive tasks, enhancing code quality, and accelerating development workflows.",
	},
	"automate-anything-building-smart-workflows-n8n": {
		Slug:     "automate-anything-building-smart-workflows-n8n",
		Title:    "Automate Anything: Building Smart Workflows with n8n",
		Subtitle: "Master the art of workflow automation using n8n's powerful visual interface. Learn to build complex integrations, automate business processes, and create intelligent workflows that save time and reduce errors.",
		Date:     "2024-01-22",
		ReadTime: "15-18 min read",
		Tags:     []string{"Automation", "n8n", "Workflows", "Integration", "DevOps"},
		Excerpt:  "Master the art of workflow automation using n8n's powerful visual interface. Learn to build complex integrations, automate business processes, and create intelligent workflows that save time and reduce errors.",
	},
}

// bodies of the posts with full content; the meta part is filled from
// metaTable when the store is built
var bodyTable = map[string]blog.Post{
	"microservices-nodejs-docker": {
		EstimatedReadTime: "12-15 minutes",
		Audience:          []string{"Backend Developers", "DevOps Engineers", "Full Stack Engineers", "Node.js Architects"},
		Overview:          "Microservices allow teams to build and scale backend systems independently. In this guide, you'll learn how to design, containerize, and orchestrate microservices using Node.js, Docker, and Kubernetes, with a focus on communication, data consistency, and DevOps automation.",
		Sections: []blog.Section{
			{
				Title:   "What are Microservices?",
				Content: "Microservices are an architectural style that structures an application as a collection of small autonomous services, each responsible for a specific domain or functionality. Unlike monoliths, microservices communicate over APIs or message brokers and are independently deployable.",
			},
			{
				Title: "Dockerizing Node.js Services",
				Extras: blog.Extras{
					Code: &blog.CodeBlock{
						Language: "dockerfile",
						Content:  "FROM node:18-alpine\nWORKDIR /app\nCOPY package*.json ./\nRUN npm install\nCOPY . .\nEXPOSE 3000\nCMD [\"node\", \"index.js\"]",
					},
					DockerCompose: &blog.CodeBlock{
						Language: "yaml",
						Content:  "version: '3.8'\nservices:\n  user-service:\n    build: ./services/user-service\n    ports:\n      - \"3000:3000\"\n  auth-service:\n    build: ./services/auth-service\n    ports:\n      - \"3001:3000\"",
					},
					BulletPoints: []string{
						"Node.js is lightweight and non-blocking, ideal for I/O heavy services",
						"Quick startup time enables fast scaling and bootstrapping",
						"The NPM ecosystem covers HTTP, GraphQL and message queue clients",
					},
				},
			},
			{
				Title: "Service-to-Service Communication",
				Extras: blog.Extras{
					Methods: []blog.ServiceMethod{
						{Method: "REST APIs", Benefit: "Simple and widely supported", Drawback: "Tight coupling if overused"},
						{Method: "Message Queues (e.g., RabbitMQ, NATS)", Benefit: "Async communication, loose coupling", Drawback: "Harder to debug; eventual consistency"},
						{Method: "gRPC", Benefit: "Strong typing and fast binary protocol", Drawback: "Less browser-friendly; requires .proto files"},
					},
					K8sYaml: &blog.CodeBlock{
						Language: "yaml",
						Content:  "apiVersion: apps/v1\nkind: Deployment\nmetadata:\n  name: user-service\nspec:\n  replicas: 2\n  selector:\n    matchLabels:\n      app: user-service\n  template:\n    metadata:\n      labels:\n        app: user-service\n    spec:\n      containers:\n      - name: user-service\n        image: your-dockerhub/user-service\n        ports:\n        - containerPort: 3000",
					},
					Benefits: []string{
						"Horizontal scaling per service",
						"Built-in service discovery",
						"Self-healing via replica management",
					},
					Note: "Each service runs its own server and exposes only relevant endpoints.",
				},
			},
		},
	},
	"state-management-react-redux-zustand-context": {
		EstimatedReadTime: "10-12 minutes",
		Audience:          []string{"React Developers", "Frontend Engineers", "Tech Leads", "Intermediate to Advanced Engineers"},
		Overview:          "Managing state effectively is crucial for building scalable React applications. This guide compares three popular state management libraries, Redux, Zustand and React Context, based on scalability, performance, and ease of use.",
		Sections: []blog.Section{
			{
				Title:   "Why State Management Matters",
				Content: "React's built-in state works well for local UI interactions, but as applications grow, shared state across components becomes harder to manage. Choosing the right state management library helps you simplify complex interactions, improve performance, and maintain code quality.",
			},
			{
				Title: "Quick Comparison",
				Type:  blog.SectionTypeTable,
				Content: `[
					{"feature": "Library", "Redux": "Enterprise-Grade", "Zustand": "Lightweight", "Context": "Native"},
					{"feature": "Boilerplate", "Redux": "High", "Zustand": "Low", "Context": "Medium"},
					{"feature": "Performance", "Redux": "Excellent (with memoization)", "Zustand": "Excellent (fine-grained selectors)", "Context": "Poor (global re-renders)"},
					{"feature": "Learning Curve", "Redux": "Steep", "Zustand": "Low", "Context": "Very Low"},
					{"feature": "Best For", "Redux": "Large, complex apps with middleware", "Zustand": "Mid-size apps with shared state", "Context": "Small apps or theme/auth state"}
				]`,
			},
			{
				Title: "React Context: The Native Way",
				Extras: blog.Extras{
					Code: &blog.CodeBlock{
						Language: "tsx",
						Content:  "const ThemeContext = createContext()\n\nfunction ThemeProvider({ children }) {\n  const [theme, setTheme] = useState('light')\n  return (\n    <ThemeContext.Provider value={{ theme, setTheme }}>\n      {children}\n    </ThemeContext.Provider>\n  )\n}",
					},
					UseCases: []string{"Theme toggling", "Auth/user session context", "Localization (i18n)"},
					Pros:     []string{"Built-in to React", "No external dependencies", "Simple to implement"},
					Cons:     []string{"Triggers global re-renders", "Not suitable for large dynamic state", "Debugging can get tricky"},
				},
			},
			{
				Title: "Redux: Scalable and Predictable",
				Extras: blog.Extras{
					Code: &blog.CodeBlock{
						Language: "ts",
						Content:  "import { createSlice, configureStore } from '@reduxjs/toolkit'\n\nconst counterSlice = createSlice({\n  name: 'counter',\n  initialState: { count: 0 },\n  reducers: {\n    increment: state => { state.count++ },\n    decrement: state => { state.count-- }\n  }\n})\n\nconst store = configureStore({ reducer: { counter: counterSlice.reducer } })",
					},
					UseCases: []string{"Apps with complex data flows", "Enterprise applications", "Apps needing debugging tools & middleware"},
					Pros:     []string{"Predictable state flow", "Powerful devtools", "Middleware support (e.g. redux-thunk, redux-saga)"},
					Cons:     []string{"Boilerplate (even with Redux Toolkit)", "Learning curve for reducers/actions/store", "May feel overkill for small apps"},
				},
			},
			{
				Title:   "Performance Considerations",
				Content: "React Context triggers a re-render of all consumers when the value changes, making it inefficient for frequent or deeply nested updates. Zustand and Redux (with `useSelector`) allow granular subscriptions, avoiding unnecessary renders.",
				Extras: blog.Extras{
					Tips: []string{
						"Use `React.memo` and `useCallback` to prevent unnecessary renders",
						"Avoid putting changing values (like form inputs) in Context",
						"Zustand supports the `selector` pattern to only re-render based on specific state parts",
					},
				},
			},
			{
				Title: "When to Use Which?",
				Extras: blog.Extras{
					DecisionMatrix: []blog.DecisionItem{
						{Scenario: "You're building a large enterprise app with multiple developers", Recommendation: "Use Redux"},
						{Scenario: "You need to manage simple global state like modal visibility or filter options", Recommendation: "Use Zustand"},
						{Scenario: "You need a lightweight solution for auth or theme context", Recommendation: "Use React Context"},
					},
				},
			},
			{
				Title: "Final Checklist",
				Extras: blog.Extras{
					Checklist: []string{
						"Use Context for lightweight and static shared state (theme, auth)",
						"Use Zustand for fast, boilerplate-free global state",
						"Use Redux when scaling to many domains and needing middleware",
						"Avoid putting frequently changing state in React Context",
					},
				},
			},
		},
	},
	"ai-agents-developer-productivity": {
		EstimatedReadTime: "10-12 minutes",
		Audience:          []string{"Software Developers", "Engineering Teams", "Tech Leads", "DevOps Engineers"},
		Overview:          "AI agents are transforming the software development landscape by automating mundane tasks, providing intelligent code suggestions, and streamlining development workflows. This guide explores how developers can leverage AI agents to boost productivity, improve code quality, and focus on high-value creative work.",
		Sections: []blog.Section{
			{
				Title:   "The Rise of AI Agents in Software Development",
				Content: "AI agents have evolved from simple code completion tools to sophisticated assistants capable of understanding context, generating complex code, debugging issues, and even architecting solutions. These intelligent systems are becoming indispensable partners in modern software development.",
			},
			{
				Title: "Key Areas Where AI Agents Boost Productivity",
				Type:  blog.SectionTypeTable,
				Content: `[
					{"feature": "Code Generation", "purpose": "Generate boilerplate code, functions, and entire modules from natural language descriptions"},
					{"feature": "Code Review & Analysis", "purpose": "Automated code review, bug detection, and security vulnerability scanning"},
					{"feature": "Documentation", "purpose": "Auto-generate documentation, comments, and API specifications"},
					{"feature": "Test Generation", "purpose": "Create unit tests, integration tests, and test data automatically"},
					{"feature": "Debugging & Troubleshooting", "purpose": "Identify bugs, suggest fixes, and explain error messages"},
					{"feature": "Refactoring", "purpose": "Optimize code structure, improve performance, and modernize legacy code"}
				]`,
			},
			{
				Title: "Popular AI Agent Tools for Developers",
				Extras: blog.Extras{
					Tools: []string{
						"GitHub Copilot - AI pair programmer",
						"ChatGPT/Claude - Code generation and debugging",
						"Tabnine - AI code completion",
						"Cursor - AI-powered code editor",
						"Replit Ghostwriter - Collaborative AI coding",
					},
				},
			},
			{
				Title:   "The Future of AI-Assisted Development",
				Content: "AI agents will continue to evolve, becoming more sophisticated in understanding business requirements, architectural decisions, and complex problem-solving. The future developer will be one who effectively collaborates with AI to build better software faster, while AI handles the routine implementation details.",
			},
		},
	},
}
